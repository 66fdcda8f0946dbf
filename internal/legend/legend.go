// Package legend holds the standardized avalanche potential–size–model-type
// matrix. The matrix links hazard potential levels ("very high", "high",
// "moderat", "low") to avalanche size classes and the admissible
// PPM/PEM/rSize triples used by the scenario legend filter.
//
// The matrix content is data, embedded as YAML for reproducibility.
package legend

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed legend.yaml
var legendYAML []byte

// Triple is one admissible PPM/PEM/rSize combination.
type Triple struct {
	PPM   int
	PEM   int
	RSize int
}

// Row is one fully expanded matrix row.
type Row struct {
	Potential string
	Size      int
	Triple
	ModType string
}

// Matrix is the expanded potential–size matrix.
type Matrix struct {
	Version string
	Rows    []Row
}

type yamlEntry struct {
	PPM int    `yaml:"ppm"`
	PEM int    `yaml:"pem"`
	Mod string `yaml:"mod"`
}

type yamlBlock struct {
	Potential string      `yaml:"potential"`
	Size      int         `yaml:"size"`
	Entries   []yamlEntry `yaml:"entries"`
}

type yamlMatrix struct {
	Version string      `yaml:"version"`
	Blocks  []yamlBlock `yaml:"blocks"`
}

// RSizeFrom derives the relative size class from the PPM-PEM delta:
// 5 for a delta of 0 down to 1 for a delta outside 0..3.
func RSizeFrom(ppm, pem int) int {
	switch d := ppm - pem; {
	case d == 0:
		return 5
	case d == 1:
		return 4
	case d == 2:
		return 3
	case d == 3:
		return 2
	default:
		return 1
	}
}

// Default loads the embedded matrix. The embedded YAML is part of the build,
// so a parse failure is a programming error.
func Default() *Matrix {
	m, err := Parse(legendYAML)
	if err != nil {
		panic(fmt.Sprintf("legend: embedded matrix: %v", err))
	}
	return m
}

// Parse expands matrix YAML into rows with derived rSize values.
func Parse(data []byte) (*Matrix, error) {
	var ym yamlMatrix
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("legend: parse matrix: %w", err)
	}
	m := &Matrix{Version: ym.Version}
	for _, b := range ym.Blocks {
		pot := strings.ToLower(strings.TrimSpace(b.Potential))
		for _, e := range b.Entries {
			m.Rows = append(m.Rows, Row{
				Potential: pot,
				Size:      b.Size,
				Triple:    Triple{PPM: e.PPM, PEM: e.PEM, RSize: RSizeFrom(e.PPM, e.PEM)},
				ModType:   strings.ToLower(strings.TrimSpace(e.Mod)),
			})
		}
	}
	return m, nil
}

// Triples returns the deduplicated admissible triples for the given hazard
// potential levels and size-class header. An empty result means the matrix
// defines no combination for the selection.
func (m *Matrix) Triples(potentials []string, size int) []Triple {
	want := make(map[string]bool, len(potentials))
	for _, p := range potentials {
		want[strings.ToLower(strings.TrimSpace(p))] = true
	}

	seen := make(map[Triple]bool)
	var out []Triple
	for _, r := range m.Rows {
		if r.Size != size || !want[r.Potential] {
			continue
		}
		if seen[r.Triple] {
			continue
		}
		seen[r.Triple] = true
		out = append(out, r.Triple)
	}
	return out
}
