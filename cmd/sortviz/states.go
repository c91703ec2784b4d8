package main

import (
	"fmt"

	"github.com/khshaikh19/sortviz/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Print the run state machine as a Mermaid diagram",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), graph.StateDiagram(nil))
	},
}

func init() {
	rootCmd.AddCommand(statesCmd)
}
