package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenNHM/AvaScenarioMapper/internal/config"
)

var scenariosFlags struct {
	cfgPath string
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenarios defined in the configuration",
	RunE:  runScenarios,
}

func init() {
	scenariosCmd.Flags().StringVarP(&scenariosFlags.cfgPath, "config", "c", "avascenmapper.yaml", "Path to mapper configuration")
}

func runScenarios(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(scenariosFlags.cfgPath)
	if err != nil {
		return err
	}
	if len(cfg.Scenarios) == 0 {
		fmt.Println("no scenarios configured")
		return nil
	}
	for _, s := range cfg.Scenarios {
		var parts []string
		if len(s.LKRegions) > 0 {
			parts = append(parts, fmt.Sprintf("lk=%v", s.LKRegions))
		}
		if len(s.LWDRegions) > 0 {
			parts = append(parts, fmt.Sprintf("lwd=%v", s.LWDRegions))
		}
		if len(s.LKRegions) > 0 && len(s.LWDRegions) > 0 {
			parts = append(parts, "mode="+s.Criteria().RegionMode.String())
		}
		if len(s.Sectors) > 0 {
			parts = append(parts, fmt.Sprintf("sectors=%v", s.Sectors))
		}
		if len(s.Flows) > 0 {
			parts = append(parts, fmt.Sprintf("flows=%v", s.Flows))
		}
		if s.ElevMin != nil || s.ElevMax != nil {
			parts = append(parts, fmt.Sprintf("elev=[%s, %s]", intOrOpen(s.ElevMin), intOrOpen(s.ElevMax)))
		}
		if len(s.AvaPotentials) > 0 && s.AvaSize != nil {
			parts = append(parts, fmt.Sprintf("legend=%v/%d", s.AvaPotentials, *s.AvaSize))
		}
		if s.SingleRSize == nil || *s.SingleRSize {
			parts = append(parts, "single-rSize")
		}
		fmt.Printf("%-20s %s\n", s.Name, strings.Join(parts, " "))
	}
	return nil
}

func intOrOpen(v *int) string {
	if v == nil {
		return "open"
	}
	return fmt.Sprintf("%d", *v)
}
