package avadir

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{
	"eventID", "praID", "role",
	"LKGebietID", "LWDGebietID", "subC",
	"sector", "elevMin", "elevMax", "flow",
	"avaPotential", "PPM", "PEM", "rSize",
	"praAreaM", "scenario", "geometry",
}

// SaveCSV exports records as CSV for spreadsheet review. When withGeometry
// is set the raw GeoJSON geometry is carried in the last column; otherwise
// the column stays empty.
func SaveCSV(path string, records []Record, withGeometry bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("avadir: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("avadir: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("avadir: write header: %w", err)
	}
	for _, r := range records {
		geom := ""
		if withGeometry && len(r.Geometry) > 0 {
			geom = string(r.Geometry)
		}
		row := []string{
			r.EventID, r.PraID, r.Role,
			r.LKGebietID, r.LWDGebietID, strconv.Itoa(r.SubC),
			r.Sector, strconv.Itoa(r.ElevMin), strconv.Itoa(r.ElevMax), r.Flow,
			r.AvaPotential, strconv.Itoa(r.PPM), strconv.Itoa(r.PEM), strconv.Itoa(r.RSize),
			strconv.FormatFloat(r.PraAreaM, 'f', -1, 64), r.Scenario, geom,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("avadir: write row %s: %w", r.EventID, err)
		}
	}
	w.Flush()
	return w.Error()
}
