package avadir

import (
	"fmt"
	"strings"
)

// RequiredProperties are the feature properties the scenario filters depend
// on. A directory file missing any of them cannot be mapped at all.
var RequiredProperties = []string{
	"eventID", "praID", "role",
	"flow", "sector", "subC",
	"elevMin", "elevMax", "rSize",
	"LKGebietID", "LWDGebietID",
}

// SchemaError reports a directory file that is structurally unusable:
// required properties absent, or no rows at all. It aborts the whole batch,
// since no scenario can be evaluated against it.
type SchemaError struct {
	Path    string
	Missing []string
	Empty   bool
}

func (e *SchemaError) Error() string {
	if e.Empty {
		return fmt.Sprintf("avadir: %s contains no records", e.Path)
	}
	return fmt.Sprintf("avadir: %s missing required properties: %s",
		e.Path, strings.Join(e.Missing, ", "))
}

// CheckSchema validates a loaded table against the required property list.
// seen holds the union of property keys observed while decoding.
func CheckSchema(t *Table, path string, seen map[string]bool) error {
	var missing []string
	for _, p := range RequiredProperties {
		if !seen[p] {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Path: path, Missing: missing}
	}
	if t.Len() == 0 {
		return &SchemaError{Path: path, Empty: true}
	}
	return nil
}

// Normalize enforces value conventions the filters rely on: flow regimes and
// roles are lower-cased and trimmed, sectors upper-cased. Returns the table
// for chaining.
func Normalize(t *Table) *Table {
	for i := range t.Records {
		r := &t.Records[i]
		r.Flow = strings.ToLower(strings.TrimSpace(r.Flow))
		r.Role = strings.ToLower(strings.TrimSpace(r.Role))
		r.Sector = strings.ToUpper(strings.TrimSpace(r.Sector))
		r.AvaPotential = strings.ToLower(strings.TrimSpace(r.AvaPotential))
	}
	return t
}
