package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "avascenmapper",
	Short: "Derive scenario subsets from avalanche-simulation results",
	Long: "AvaScenarioMapper filters the avalanche directory (the table of simulated\n" +
		"release areas and avalanche outlines) into named scenario subsets for\n" +
		"visualization and mapping, applying region, physical and hazard filters\n" +
		"and the single-PRA deduplication rule.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
