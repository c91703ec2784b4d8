package main

import (
	"fmt"

	"github.com/khshaikh19/sortviz/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the supported algorithms",
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		render := tui.NewRenderer(80)
		if plain {
			render = tui.PlainRenderer
		}
		out, err := render(tui.AlgorithmTable())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
	algorithmsCmd.Flags().Bool("plain", false, "Print raw markdown")
}
