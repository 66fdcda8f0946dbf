package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenNHM/AvaScenarioMapper/internal/scenario"
)

const sampleConfig = `
workflow:
  logLevel: DEBUG
  logFormat: json
  writeScenarioGeoJson: true
  writeScenarioCsv: true
  makeMaster: true
  masterDedup: true
  parallel: 4
paths:
  avaDirectoryResults: data/avaDirectoryResults.geojson
  scenMapsDir: out/avaScenMaps
scenarios:
  - name: winter
    lkRegions: [IT-32-BZ-18-02]
    sectors: [e, n, s, w]
    flows: [Dry]
    elevMin: 1800
    elevMax: 5000
  - name: wet-spring
    lwdRegions: [LWD-07, LWD-08]
    flows: [wet]
    singleRSize: false
  - name: combined
    lkRegions: [IT-32-BZ-18-02]
    lwdRegions: [LWD-07]
    regionMode: AND
    avaPotentials: [High, very high]
    avaSize: 3
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "avascenmapper.yaml", sampleConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workflow.LogLevel != "DEBUG" || cfg.Workflow.Parallel != 4 {
		t.Errorf("workflow wrong: %+v", cfg.Workflow)
	}
	if cfg.Paths.AvaDirectoryResults != "data/avaDirectoryResults.geojson" {
		t.Errorf("paths wrong: %+v", cfg.Paths)
	}
	if len(cfg.Scenarios) != 3 {
		t.Fatalf("scenarios = %d, want 3", len(cfg.Scenarios))
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "minimal.yaml", "scenarios:\n  - name: only\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workflow.LogLevel != "INFO" {
		t.Errorf("default logLevel = %q, want INFO", cfg.Workflow.LogLevel)
	}
	if !cfg.Workflow.WriteScenarioGeoJSON {
		t.Error("GeoJSON output should default to on")
	}
	if cfg.Workflow.Parallel != 1 {
		t.Errorf("default parallel = %d, want 1", cfg.Workflow.Parallel)
	}
}

func TestLoad_LocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "avascenmapper.yaml", sampleConfig)
	writeConfig(t, dir, "local_avascenmapper.yaml", `
paths:
  avaDirectoryResults: /srv/ava/results.geojson
  scenMapsDir: /srv/ava/maps
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.AvaDirectoryResults != "/srv/ava/results.geojson" {
		t.Errorf("local override not applied: %+v", cfg.Paths)
	}
	// Scenarios come from the main file only.
	if len(cfg.Scenarios) != 3 {
		t.Errorf("override must not touch scenarios, got %d", len(cfg.Scenarios))
	}
}

func TestLoad_LocalOverridePartial(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "avascenmapper.yaml", sampleConfig)
	writeConfig(t, dir, "local_avascenmapper.yaml", `
workflow:
  logLevel: WARNING
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workflow.LogLevel != "WARNING" {
		t.Errorf("logLevel = %q, want the override value WARNING", cfg.Workflow.LogLevel)
	}
	// Settings absent from the local file keep their main-config values.
	if cfg.Workflow.Parallel != 4 {
		t.Errorf("parallel = %d, want 4 from the main config", cfg.Workflow.Parallel)
	}
	if !cfg.Workflow.MakeMaster || !cfg.Workflow.MasterDedup {
		t.Error("master settings lost by a partial workflow override")
	}
	if !cfg.Workflow.WriteScenarioCSV || !cfg.Workflow.WriteScenarioGeoJSON {
		t.Error("output format settings lost by a partial workflow override")
	}
	if cfg.Paths.ScenMapsDir != "out/avaScenMaps" {
		t.Errorf("paths block touched by a workflow-only override: %+v", cfg.Paths)
	}
}

func TestScenario_Criteria(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "avascenmapper.yaml", sampleConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	winter := cfg.Scenarios[0].Criteria()
	if winter.Name != "winter" {
		t.Errorf("name = %q", winter.Name)
	}
	if !winter.LKRegions.Restricted() || !winter.LKRegions.Allows("IT-32-BZ-18-02") {
		t.Error("LK region restriction lost")
	}
	if winter.LWDRegions.Restricted() {
		t.Error("absent LWD list must be unrestricted")
	}
	if !winter.Sectors.Allows("N") {
		t.Error("sectors should be upper-cased for matching")
	}
	if !winter.Flows.Allows("dry") {
		t.Error("flows should be lower-cased for matching")
	}
	if winter.Elevation.Min == nil || *winter.Elevation.Min != 1800 {
		t.Error("elevation window lost")
	}
	if !winter.SingleRSize {
		t.Error("singleRSize must default to true")
	}

	spring := cfg.Scenarios[1].Criteria()
	if spring.SingleRSize {
		t.Error("explicit singleRSize: false not honored")
	}

	combined := cfg.Scenarios[2].Criteria()
	if combined.RegionMode != scenario.RegionAnd {
		t.Errorf("regionMode = %v, want and", combined.RegionMode)
	}
	if !combined.Potentials.Allows("high") || !combined.Potentials.Allows("very high") {
		t.Error("potentials should be lower-cased for matching")
	}
	if combined.AvaSize == nil || *combined.AvaSize != 3 {
		t.Error("avaSize lost")
	}
}

func TestCriteriaList_NamesUnnamed(t *testing.T) {
	cfg := &Config{Scenarios: []Scenario{{}, {Name: "real"}}}
	list := cfg.CriteriaList()
	if len(list) != 2 {
		t.Fatalf("criteria = %d, want 2", len(list))
	}
	if list[0].Name != "scenario-1" {
		t.Errorf("unnamed scenario = %q, want scenario-1", list[0].Name)
	}
	if list[1].Name != "real" {
		t.Errorf("named scenario = %q", list[1].Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}
