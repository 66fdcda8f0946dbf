package avadir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// feature mirrors one GeoJSON feature of the avalanche directory. Geometry
// stays raw; properties are decoded twice, once into a key map for the
// schema check and once into the typed record.
type feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Name     string    `json:"name,omitempty"`
	Features []feature `json:"features"`
}

// Load reads an avalanche directory GeoJSON file, decodes it into a Table,
// normalizes label casing and validates the schema. Any SchemaError is
// fatal for the caller's whole batch.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("avadir: read %q: %w", path, err)
	}
	return Decode(data, path)
}

// Decode parses GeoJSON bytes into a Table. path is used for diagnostics
// only.
func Decode(data []byte, path string) (*Table, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("avadir: parse %q: %w", path, err)
	}

	t := &Table{Records: make([]Record, 0, len(fc.Features))}
	seen := make(map[string]bool)

	for i, f := range fc.Features {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(f.Properties, &keys); err != nil {
			return nil, fmt.Errorf("avadir: feature %d properties in %q: %w", i, path, err)
		}
		for k := range keys {
			seen[k] = true
		}

		var r Record
		if err := json.Unmarshal(f.Properties, &r); err != nil {
			return nil, fmt.Errorf("avadir: feature %d in %q: %w", i, path, err)
		}
		r.Geometry = f.Geometry
		t.Records = append(t.Records, r)
	}

	if err := CheckSchema(t, filepath.Base(path), seen); err != nil {
		return nil, err
	}
	return Normalize(t), nil
}

// Save writes records as a GeoJSON FeatureCollection, creating parent
// directories as needed.
func Save(path, name string, records []Record) error {
	fc := featureCollection{Type: "FeatureCollection", Name: name}
	fc.Features = make([]feature, 0, len(records))
	for _, r := range records {
		props, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("avadir: marshal record %s: %w", r.EventID, err)
		}
		geom := r.Geometry
		if len(geom) == 0 {
			geom = json.RawMessage("null")
		}
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Geometry:   geom,
			Properties: props,
		})
	}

	data, err := json.MarshalIndent(&fc, "", "  ")
	if err != nil {
		return fmt.Errorf("avadir: marshal %q: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("avadir: create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("avadir: write %q: %w", path, err)
	}
	return nil
}
