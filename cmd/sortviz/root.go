package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sortviz",
	Short: "sortviz animates sorting algorithms step by step",
	Long: `sortviz runs a sorting algorithm over an array one instrumented step at a time,
drawing every comparison, swap and write as it happens.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "sortviz.yaml", "Config file (missing file means defaults)")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a config key, e.g. --set delay.max=1s (repeatable)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON on stderr")
}
