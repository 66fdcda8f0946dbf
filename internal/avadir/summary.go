package avadir

import "sort"

// IntRange is an observed min/max span of a numeric attribute.
type IntRange struct {
	Min, Max int
}

// Summary describes the filterable attribute space of a directory table.
// It backs the pre-run check mode so users can author scenario definitions
// against real values instead of guessing.
type Summary struct {
	Rows        int
	Events      int
	UniquePRAs  int
	Elevation   IntRange
	RSize       IntRange
	SizeClasses []int
	SubCs       []int
	Sectors     []string
	Flows       []string
	Potentials  []string
	LKGebiete   []string
	LWDGebiete  []string
}

// Summarize scans the table once and collects distinct category values and
// numeric spans.
func Summarize(t *Table) Summary {
	s := Summary{Rows: t.Len()}
	if t.Len() == 0 {
		return s
	}

	events := make(map[string]bool)
	pras := make(map[string]bool)
	sectors := make(map[string]bool)
	flows := make(map[string]bool)
	pots := make(map[string]bool)
	lk := make(map[string]bool)
	lwd := make(map[string]bool)
	pems := make(map[int]bool)
	subcs := make(map[int]bool)

	s.Elevation = IntRange{Min: t.Records[0].ElevMin, Max: t.Records[0].ElevMax}
	s.RSize = IntRange{Min: t.Records[0].RSize, Max: t.Records[0].RSize}

	for _, r := range t.Records {
		events[r.EventID] = true
		pras[r.PraID] = true
		sectors[r.Sector] = true
		flows[r.Flow] = true
		if r.AvaPotential != "" {
			pots[r.AvaPotential] = true
		}
		lk[r.LKGebietID] = true
		lwd[r.LWDGebietID] = true
		pems[r.PEM] = true
		subcs[r.SubC] = true

		if r.ElevMin < s.Elevation.Min {
			s.Elevation.Min = r.ElevMin
		}
		if r.ElevMax > s.Elevation.Max {
			s.Elevation.Max = r.ElevMax
		}
		if r.RSize < s.RSize.Min {
			s.RSize.Min = r.RSize
		}
		if r.RSize > s.RSize.Max {
			s.RSize.Max = r.RSize
		}
	}

	s.Events = len(events)
	s.UniquePRAs = len(pras)
	s.Sectors = sortedStrings(sectors)
	s.Flows = sortedStrings(flows)
	s.Potentials = sortedStrings(pots)
	s.LKGebiete = sortedStrings(lk)
	s.LWDGebiete = sortedStrings(lwd)
	s.SizeClasses = sortedInts(pems)
	s.SubCs = sortedInts(subcs)
	return s
}

func sortedStrings(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedInts(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
