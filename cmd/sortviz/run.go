package main

import (
	"os"

	"github.com/khshaikh19/sortviz/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [algorithm]",
	Short: "Sort an array and draw every step",
	Long: `Runs one algorithm over a random (or given) array. While the run is drawing,
space or p pauses and resumes, q or Ctrl-C stops.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{Interactive: true}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Overrides, _ = cmd.Flags().GetStringArray("set")
		opts.LogLevel, _ = cmd.Flags().GetString("log-level")
		opts.LogJSON, _ = cmd.Flags().GetBool("log-json")

		opts.Algorithm, _ = cmd.Flags().GetString("algorithm")
		if !cmd.Flags().Changed("algorithm") && len(args) > 0 {
			opts.Algorithm = args[0]
		}
		opts.Size, _ = cmd.Flags().GetInt("size")
		opts.Speed, _ = cmd.Flags().GetInt("speed")
		opts.Seed, _ = cmd.Flags().GetUint64("seed")
		opts.Values, _ = cmd.Flags().GetIntSlice("values")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		opts.RedisAddr, _ = cmd.Flags().GetString("redis-addr")
		opts.LockKey, _ = cmd.Flags().GetString("lock-key")

		return cli.RunSession(cmd.Context(), opts, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("algorithm", "a", "", "Algorithm to run (see 'sortviz algorithms')")
	runCmd.Flags().IntP("size", "n", 0, "Array length (0 uses the configured default)")
	runCmd.Flags().IntP("speed", "s", 0, "Speed within the configured range; higher is faster")
	runCmd.Flags().Uint64("seed", 0, "Seed for the random array (0 picks one)")
	runCmd.Flags().IntSlice("values", nil, "Sort these values instead of a random array")
	runCmd.Flags().Bool("json", false, "Emit NDJSON records instead of drawing")
	runCmd.Flags().BoolP("quiet", "q", false, "Skip the banner and the summary")
	runCmd.Flags().String("metrics-addr", "", "Serve status, events and metrics on this address during the run")
	runCmd.Flags().String("redis-addr", "", "Share the run lock through Redis at this address")
	runCmd.Flags().String("lock-key", cli.DefaultLockKey, "Name of the run lock")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
