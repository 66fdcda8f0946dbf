// Package avadir models the avalanche directory: the table of simulated
// avalanche events produced by the upstream simulation steps. Each simulated
// event contributes exactly two rows, a release-area polygon and an avalanche
// outline polygon, sharing an event ID and all non-geometry attributes.
//
// The package owns loading, validation and export of the table. It knows
// nothing about scenario filtering; that lives in internal/scenario.
package avadir

import "encoding/json"

// Role values for a record within a simulated event.
const (
	RoleRelease = "release"
	RoleOutline = "outline"
)

// Record is one row of the avalanche directory. The geometry is carried
// opaquely as GeoJSON; the engine never interprets it.
type Record struct {
	EventID string `json:"eventID"`
	PraID   string `json:"praID"`
	Role    string `json:"role"`

	LKGebietID  string `json:"LKGebietID"`
	LWDGebietID string `json:"LWDGebietID"`
	SubC        int    `json:"subC"`

	Sector  string `json:"sector"`
	ElevMin int    `json:"elevMin"`
	ElevMax int    `json:"elevMax"`
	Flow    string `json:"flow"`

	AvaPotential string  `json:"avaPotential"`
	PPM          int     `json:"PPM"`
	PEM          int     `json:"PEM"`
	RSize        int     `json:"rSize"`
	PraAreaM     float64 `json:"praAreaM"`

	// Scenario is empty in source data and stamped on result records.
	Scenario string `json:"scenario,omitempty"`

	Geometry json.RawMessage `json:"-"`
}

// Attrs is the comparable, non-geometry, non-role attribute tuple of a
// record. The two records of a well-formed event carry identical Attrs.
type Attrs struct {
	PraID        string
	LKGebietID   string
	LWDGebietID  string
	SubC         int
	Sector       string
	ElevMin      int
	ElevMax      int
	Flow         string
	AvaPotential string
	PPM          int
	PEM          int
	RSize        int
}

// Attrs extracts the comparable attribute tuple.
func (r Record) Attrs() Attrs {
	return Attrs{
		PraID:        r.PraID,
		LKGebietID:   r.LKGebietID,
		LWDGebietID:  r.LWDGebietID,
		SubC:         r.SubC,
		Sector:       r.Sector,
		ElevMin:      r.ElevMin,
		ElevMax:      r.ElevMax,
		Flow:         r.Flow,
		AvaPotential: r.AvaPotential,
		PPM:          r.PPM,
		PEM:          r.PEM,
		RSize:        r.RSize,
	}
}

// Table is the in-memory avalanche directory. Once loaded it is treated as
// read-only for the duration of a mapper run; scenario engines share it
// without locking.
type Table struct {
	Records []Record
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Records) }
