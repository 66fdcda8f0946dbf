package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenNHM/AvaScenarioMapper/internal/avadir"
)

var checkFlags struct {
	cfgPath string
	input   string
}

var checkCmd = &cobra.Command{
	Use:   "check [directory-file]",
	Short: "Summarize the filterable attributes of an avalanche directory",
	Long: `Inspect an avalanche directory file and print the value ranges and
category sets available for scenario filtering, so scenario definitions
can be authored against real data instead of guesswork.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVarP(&checkFlags.cfgPath, "config", "c", "avascenmapper.yaml", "Path to mapper configuration")
	f.StringVar(&checkFlags.input, "input", "", "Avalanche directory GeoJSON (overrides paths.avaDirectoryResults)")
}

func runCheck(_ *cobra.Command, args []string) error {
	inputPath := checkFlags.input
	if inputPath == "" && len(args) > 0 {
		inputPath = args[0]
	}
	if inputPath == "" {
		cfg, err := loadConfigAndLogging(checkFlags.cfgPath)
		if err != nil {
			return err
		}
		inputPath = cfg.Paths.AvaDirectoryResults
	}
	if inputPath == "" {
		return fmt.Errorf("no input: pass a directory file, --input, or set paths.avaDirectoryResults")
	}

	table, err := avadir.Load(inputPath)
	if err != nil {
		return err
	}
	printSummary(avadir.Summarize(table))
	return nil
}

func printSummary(s avadir.Summary) {
	fmt.Printf("Avalanche directory: %d rows, %d events, %d unique PRAs\n",
		s.Rows, s.Events, s.UniquePRAs)
	fmt.Printf("  elevation    : %d -> %d\n", s.Elevation.Min, s.Elevation.Max)
	fmt.Printf("  rSize        : %d -> %d\n", s.RSize.Min, s.RSize.Max)
	fmt.Printf("  size classes : %v\n", s.SizeClasses)
	fmt.Printf("  subcatchments: %v\n", s.SubCs)
	fmt.Printf("  sectors      : %v\n", s.Sectors)
	fmt.Printf("  flows        : %v\n", s.Flows)
	if len(s.Potentials) > 0 {
		fmt.Printf("  potentials   : %v\n", s.Potentials)
	}
	fmt.Printf("  LK regions   : %v\n", s.LKGebiete)
	fmt.Printf("  LWD regions  : %v\n", s.LWDGebiete)
}
