package main

import (
	"path/filepath"
	"testing"

	"github.com/OpenNHM/AvaScenarioMapper/internal/config"
	"github.com/OpenNHM/AvaScenarioMapper/internal/scenario"
)

func TestCleanScenarioName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"winter", "winter"},
		{"wet spring 2026", "wetspring2026"},
		{"north/face", "northface"},
		{"a-b_c", "a-b_c"},
		{"   ", "unnamed"},
		{"", "unnamed"},
	}
	for _, tc := range cases {
		if got := cleanScenarioName(tc.in); got != tc.want {
			t.Errorf("cleanScenarioName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScenarioPaths(t *testing.T) {
	wf := config.Workflow{WriteScenarioGeoJSON: true, WriteScenarioCSV: true}

	geojson, csv := scenarioPaths(wf, "out", "winter")
	if want := filepath.Join("out", "avaScen_winter.geojson"); geojson != want {
		t.Errorf("geojson path = %q, want %q", geojson, want)
	}
	if want := filepath.Join("out", "avaScen_winter.csv"); csv != want {
		t.Errorf("csv path = %q, want %q", csv, want)
	}

	// The master dataset keeps its fixed name without the prefix.
	geojson, _ = scenarioPaths(wf, "out", scenario.MasterName)
	if want := filepath.Join("out", scenario.MasterName+".geojson"); geojson != want {
		t.Errorf("master path = %q, want %q", geojson, want)
	}

	// Disabled formats produce no path.
	geojson, csv = scenarioPaths(config.Workflow{}, "out", "winter")
	if geojson != "" || csv != "" {
		t.Errorf("disabled outputs produced paths %q, %q", geojson, csv)
	}
}
