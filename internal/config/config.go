// Package config reads the declarative mapper configuration. The main YAML
// file may sit next to an optional local override (local_<name>.yaml) whose
// workflow and paths settings win, mirroring how site-specific tweaks are
// kept out of the shared config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OpenNHM/AvaScenarioMapper/internal/scenario"
)

// Workflow holds the run-level switches.
type Workflow struct {
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	// CheckAvaDirResult switches the run into the pre-run diagnostic mode:
	// summarize the directory attributes and exit.
	CheckAvaDirResult bool `yaml:"checkAvaDirResult"`

	WriteScenarioGeoJSON bool `yaml:"writeScenarioGeoJson"`
	WriteScenarioCSV     bool `yaml:"writeScenarioCsv"`
	CSVGeometry          bool `yaml:"csvGeometry"`

	MakeMaster  bool `yaml:"makeMaster"`
	MasterDedup bool `yaml:"masterDedup"`

	Parallel int `yaml:"parallel"`
}

// Paths locates the input directory file and the output folder.
type Paths struct {
	AvaDirectoryResults string `yaml:"avaDirectoryResults"`
	ScenMapsDir         string `yaml:"scenMapsDir"`
}

// Scenario is one scenario definition as written in the config file.
// Absent lists impose no constraint.
type Scenario struct {
	Name          string   `yaml:"name"`
	LKRegions     []string `yaml:"lkRegions"`
	LWDRegions    []string `yaml:"lwdRegions"`
	RegionMode    string   `yaml:"regionMode"`
	SubCatchments []int    `yaml:"subCatchments"`
	Sectors       []string `yaml:"sectors"`
	Flows         []string `yaml:"flows"`
	ElevMin       *int     `yaml:"elevMin"`
	ElevMax       *int     `yaml:"elevMax"`
	AvaPotentials []string `yaml:"avaPotentials"`
	AvaSize       *int     `yaml:"avaSize"`
	SizeClasses   []int    `yaml:"sizeClasses"`

	// SingleRSize defaults to true when omitted, matching the historic
	// behavior of the mapper.
	SingleRSize *bool `yaml:"singleRSize"`
}

// Config is the parsed mapper configuration.
type Config struct {
	Workflow  Workflow   `yaml:"workflow"`
	Paths     Paths      `yaml:"paths"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Defaults returns a config with the workflow defaults applied.
func Defaults() Config {
	return Config{
		Workflow: Workflow{
			LogLevel:             "INFO",
			LogFormat:            "text",
			WriteScenarioGeoJSON: true,
			Parallel:             1,
		},
	}
}

// Load reads the config file and, when present, merges the local override
// sitting next to it.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if err := readInto(path, &cfg); err != nil {
		return nil, err
	}

	localPath := filepath.Join(filepath.Dir(path), "local_"+filepath.Base(path))
	if _, err := os.Stat(localPath); err == nil {
		// The override merges per setting: decoding a node into the
		// already-populated struct leaves absent fields untouched.
		var local struct {
			Workflow yaml.Node `yaml:"workflow"`
			Paths    yaml.Node `yaml:"paths"`
		}
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("config: read override %q: %w", localPath, err)
		}
		if err := yaml.Unmarshal(data, &local); err != nil {
			return nil, fmt.Errorf("config: parse override %q: %w", localPath, err)
		}
		if !local.Workflow.IsZero() {
			if err := local.Workflow.Decode(&cfg.Workflow); err != nil {
				return nil, fmt.Errorf("config: apply override %q: %w", localPath, err)
			}
		}
		if !local.Paths.IsZero() {
			if err := local.Paths.Decode(&cfg.Paths); err != nil {
				return nil, fmt.Errorf("config: apply override %q: %w", localPath, err)
			}
		}
	}

	return &cfg, nil
}

func readInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

func lower(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func upper(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ToUpper(strings.TrimSpace(v))
	}
	return out
}

// Criteria converts a config scenario into the immutable engine criteria.
// The conversion is where the "absent list = unrestricted" convention is
// made concrete.
func (s Scenario) Criteria() scenario.Criteria {
	single := true
	if s.SingleRSize != nil {
		single = *s.SingleRSize
	}
	return scenario.Criteria{
		Name:        s.Name,
		LKRegions:   scenario.RestrictStrings(s.LKRegions),
		LWDRegions:  scenario.RestrictStrings(s.LWDRegions),
		RegionMode:  scenario.ParseRegionMode(s.RegionMode),
		SubCs:       scenario.RestrictInts(s.SubCatchments),
		Sectors:     scenario.RestrictStrings(upper(s.Sectors)),
		Flows:       scenario.RestrictStrings(lower(s.Flows)),
		Elevation:   scenario.ElevWindow{Min: s.ElevMin, Max: s.ElevMax},
		Potentials:  scenario.RestrictStrings(lower(s.AvaPotentials)),
		SizeClasses: scenario.RestrictInts(s.SizeClasses),
		AvaSize:     s.AvaSize,
		SingleRSize: single,
	}
}

// CriteriaList converts every configured scenario, skipping unnamed
// entries (they cannot be addressed or written out).
func (c *Config) CriteriaList() []scenario.Criteria {
	out := make([]scenario.Criteria, 0, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if s.Name == "" {
			s.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		out = append(out, s.Criteria())
	}
	return out
}
