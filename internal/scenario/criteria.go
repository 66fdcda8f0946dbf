// Package scenario implements the avalanche scenario engine: multi-criteria
// filtering of the avalanche directory, release/outline pair validation,
// single-PRA deduplication and batch aggregation across scenarios.
//
// The package operates purely on in-memory data. Configuration parsing and
// file I/O live in internal/config and internal/avadir respectively.
package scenario

import "strings"

// StringFilter is a tri-state membership filter over string attributes.
// The zero value is unrestricted and allows every value; a filter built
// with RestrictStrings only allows its members. The distinction is carried
// explicitly so that "no values configured" can never be misread as
// "exclude everything".
type StringFilter struct {
	restricted bool
	members    map[string]struct{}
}

// RestrictStrings builds a filter restricted to the given values. Values
// are trimmed; comparison is exact otherwise. An empty slice yields an
// unrestricted filter, matching the configuration convention that an
// absent list imposes no constraint.
func RestrictStrings(values []string) StringFilter {
	if len(values) == 0 {
		return StringFilter{}
	}
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			m[v] = struct{}{}
		}
	}
	if len(m) == 0 {
		return StringFilter{}
	}
	return StringFilter{restricted: true, members: m}
}

// Restricted reports whether the filter constrains anything.
func (f StringFilter) Restricted() bool { return f.restricted }

// Allows reports whether v passes the filter.
func (f StringFilter) Allows(v string) bool {
	if !f.restricted {
		return true
	}
	_, ok := f.members[v]
	return ok
}

// Values returns the sorted-insensitive member list, for diagnostics.
func (f StringFilter) Values() []string {
	out := make([]string, 0, len(f.members))
	for v := range f.members {
		out = append(out, v)
	}
	return out
}

// IntFilter is the tri-state membership filter over integer attributes.
type IntFilter struct {
	restricted bool
	members    map[int]struct{}
}

// RestrictInts builds an IntFilter; an empty slice yields an unrestricted
// filter.
func RestrictInts(values []int) IntFilter {
	if len(values) == 0 {
		return IntFilter{}
	}
	m := make(map[int]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return IntFilter{restricted: true, members: m}
}

// Restricted reports whether the filter constrains anything.
func (f IntFilter) Restricted() bool { return f.restricted }

// Allows reports whether v passes the filter.
func (f IntFilter) Allows(v int) bool {
	if !f.restricted {
		return true
	}
	_, ok := f.members[v]
	return ok
}

// ElevWindow is an inclusive elevation window. Either bound may be open.
type ElevWindow struct {
	Min, Max *int
}

// Overlaps reports whether the record band [lo, hi] overlaps the window.
// Overlap is inclusive at both boundaries; containment is not required.
func (w ElevWindow) Overlaps(lo, hi int) bool {
	if w.Max != nil && lo > *w.Max {
		return false
	}
	if w.Min != nil && hi < *w.Min {
		return false
	}
	return true
}

// RegionMode selects how the LK and LWD region filters combine when both
// are restricted. With at most one restricted filter the mode is
// irrelevant and never consulted.
type RegionMode int

const (
	RegionOr RegionMode = iota
	RegionAnd
)

// ParseRegionMode is lenient: "and" in any casing selects RegionAnd,
// everything else falls back to RegionOr.
func ParseRegionMode(s string) RegionMode {
	if strings.EqualFold(strings.TrimSpace(s), "and") {
		return RegionAnd
	}
	return RegionOr
}

func (m RegionMode) String() string {
	if m == RegionAnd {
		return "and"
	}
	return "or"
}

// Criteria is one named, immutable scenario definition. It is built once
// from configuration and consumed by exactly one engine run.
type Criteria struct {
	Name string

	// Region filters: administrative (LK) and forecast (LWD) region sets.
	LKRegions  StringFilter
	LWDRegions StringFilter
	RegionMode RegionMode

	// Physical filters.
	SubCs     IntFilter
	Sectors   StringFilter
	Flows     StringFilter
	Elevation ElevWindow

	// Hazard filters.
	Potentials  StringFilter
	SizeClasses IntFilter

	// AvaSize is the size-class header for the legend triple filter; it
	// only takes effect together with a restricted Potentials filter.
	AvaSize *int

	// SingleRSize requests the single-largest-relative-size rule: one
	// event per release area, keeping the largest rSize.
	SingleRSize bool
}
