package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sonarsim",
	Short: "Tactical sonar simulation toolkit",
	Long:  "sonarsim runs a deterministic submarine sonar picture: layered ocean acoustics, patrol contacts, passive and active detection, and replayable row logs.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
}
