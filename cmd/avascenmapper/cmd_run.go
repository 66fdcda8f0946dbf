package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenNHM/AvaScenarioMapper/internal/avadir"
	"github.com/OpenNHM/AvaScenarioMapper/internal/config"
	"github.com/OpenNHM/AvaScenarioMapper/internal/legend"
	"github.com/OpenNHM/AvaScenarioMapper/internal/logging"
	"github.com/OpenNHM/AvaScenarioMapper/internal/scenario"
)

var runFlags struct {
	cfgPath  string
	input    string
	outDir   string
	force    bool
	parallel int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all configured scenario filters and write the subsets",
	Long: `Load the avalanche directory, evaluate every scenario defined in the
configuration and write one output file per scenario
(avaScen_<Scenario>.geojson / .csv), plus the combined master dataset
when requested.

Scenarios whose output files already exist are skipped unless --force
is given. A scenario that matches nothing is reported, not failed.`,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.cfgPath, "config", "c", "avascenmapper.yaml", "Path to mapper configuration")
	f.StringVar(&runFlags.input, "input", "", "Avalanche directory GeoJSON (overrides paths.avaDirectoryResults)")
	f.StringVarP(&runFlags.outDir, "out", "o", "", "Output folder (overrides paths.scenMapsDir)")
	f.BoolVar(&runFlags.force, "force", false, "Rewrite outputs that already exist")
	f.IntVar(&runFlags.parallel, "parallel", 0, "Concurrent scenario evaluations (overrides workflow.parallel)")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigAndLogging(runFlags.cfgPath)
	if err != nil {
		return err
	}
	log := logging.New("run")

	inputPath := cfg.Paths.AvaDirectoryResults
	if runFlags.input != "" {
		inputPath = runFlags.input
	}
	outDir := cfg.Paths.ScenMapsDir
	if runFlags.outDir != "" {
		outDir = runFlags.outDir
	}
	if inputPath == "" {
		return fmt.Errorf("no input: set paths.avaDirectoryResults or --input")
	}
	if outDir == "" {
		outDir = "avaScenMaps"
	}

	table, err := avadir.Load(inputPath)
	if err != nil {
		var schemaErr *avadir.SchemaError
		if errors.As(err, &schemaErr) {
			log.Error("input dataset unusable, aborting batch", "error", schemaErr)
		}
		return err
	}
	log.Info("avalanche directory loaded", "rows", table.Len(), "file", filepath.Base(inputPath))

	if cfg.Workflow.CheckAvaDirResult {
		printSummary(avadir.Summarize(table))
		log.Warn("diagnostic mode: set your scenarios in the config and run again")
		return nil
	}

	criteriaList := cfg.CriteriaList()
	if len(criteriaList) == 0 {
		log.Warn("no scenarios configured, nothing to do")
		return nil
	}

	// Skip scenarios whose outputs already exist.
	if !runFlags.force {
		kept := criteriaList[:0]
		for _, c := range criteriaList {
			if p, exists := existingOutput(cfg.Workflow, outDir, c.Name); exists {
				log.Info("skipping scenario, output exists", "scenario", c.Name, "file", p)
				continue
			}
			kept = append(kept, c)
		}
		criteriaList = kept
		if len(criteriaList) == 0 {
			log.Warn("all scenario outputs already exist, nothing to do")
			return nil
		}
	}

	opts := scenario.BatchOptions{
		Parallel:    cfg.Workflow.Parallel,
		MakeMaster:  cfg.Workflow.MakeMaster,
		MasterDedup: cfg.Workflow.MasterDedup,
	}
	if runFlags.parallel > 0 {
		opts.Parallel = runFlags.parallel
	}

	report, err := scenario.RunAll(cmd.Context(), table, criteriaList, legend.Default(), opts)
	if err != nil {
		return err
	}

	var failed int
	for _, o := range report.Outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		if err := writeOutputs(cfg.Workflow, outDir, o.Result); err != nil {
			return err
		}
	}
	if report.Master != nil {
		if err := writeOutputs(cfg.Workflow, outDir, report.Master); err != nil {
			return err
		}
	}

	for _, f := range report.Findings() {
		log.Warn("finding", "scenario", f.Scenario, "kind", string(f.Kind), "detail", f.Message)
	}
	log.Info("batch finished",
		"run_id", report.RunID,
		"scenarios", len(report.Outcomes),
		"failed", failed,
		"duration", report.Duration.Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(report.Outcomes))
	}
	return nil
}

// loadConfigAndLogging reads the config and installs the global logger per
// its workflow block.
func loadConfigAndLogging(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logging.Init(logging.ParseLevel(cfg.Workflow.LogLevel), cfg.Workflow.LogFormat)
	return cfg, nil
}

// cleanScenarioName keeps alphanumerics, dashes and underscores so scenario
// names are safe as file names.
func cleanScenarioName(name string) string {
	var b strings.Builder
	for _, ch := range name {
		if ch == '-' || ch == '_' ||
			(ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') {
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}

func scenarioPaths(wf config.Workflow, outDir, name string) (geojson, csv string) {
	base := name
	if name != scenario.MasterName {
		base = "avaScen_" + cleanScenarioName(name)
	}
	if wf.WriteScenarioGeoJSON {
		geojson = filepath.Join(outDir, base+".geojson")
	}
	if wf.WriteScenarioCSV {
		csv = filepath.Join(outDir, base+".csv")
	}
	return geojson, csv
}

func existingOutput(wf config.Workflow, outDir, name string) (string, bool) {
	geojson, csv := scenarioPaths(wf, outDir, name)
	for _, p := range []string{geojson, csv} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func writeOutputs(wf config.Workflow, outDir string, res *scenario.Result) error {
	log := logging.New("run")
	if len(res.Records) == 0 {
		log.Warn("no records to write", "scenario", res.Scenario)
		return nil
	}
	geojson, csv := scenarioPaths(wf, outDir, res.Scenario)
	if geojson != "" {
		if err := avadir.Save(geojson, res.Scenario, res.Records); err != nil {
			return err
		}
		log.Info("wrote GeoJSON", "file", geojson)
	}
	if csv != "" {
		if err := avadir.SaveCSV(csv, res.Records, wf.CSVGeometry); err != nil {
			return err
		}
		log.Info("wrote CSV", "file", csv)
	}
	return nil
}
