package scenario

import (
	"fmt"
	"sort"

	"github.com/OpenNHM/AvaScenarioMapper/internal/avadir"
)

// Event is one validated simulation result: the release-area record and the
// avalanche-outline record sharing an event ID. The pairing is a lookup
// relation over otherwise independent rows, so the records are held by
// value and never point at each other.
type Event struct {
	ID      string
	Release avadir.Record
	Outline avadir.Record
}

// PraID returns the release-area identifier of the event.
func (e Event) PraID() string { return e.Release.PraID }

// RSize returns the relative-size ranking of the event.
func (e Event) RSize() int { return e.Release.RSize }

// BuildPairs groups filtered records by event ID and validates the pairing
// invariant: exactly one release and one outline record per event, with
// identical non-geometry attributes. Malformed groups are excluded and
// reported as findings, one per event ID; they never abort the remaining
// groups. Events are returned ordered by event ID so engine output is
// deterministic.
func BuildPairs(scenarioName string, records []avadir.Record) ([]Event, []Finding) {
	groups := make(map[string][]avadir.Record)
	order := make([]string, 0)
	for _, r := range records {
		if _, ok := groups[r.EventID]; !ok {
			order = append(order, r.EventID)
		}
		groups[r.EventID] = append(groups[r.EventID], r)
	}
	sort.Strings(order)

	var events []Event
	var findings []Finding

	for _, id := range order {
		group := groups[id]
		ev, problem := pairGroup(id, group)
		if problem != "" {
			findings = append(findings, Finding{
				Scenario: scenarioName,
				Kind:     FindingMalformedEvent,
				EventID:  id,
				PraID:    group[0].PraID,
				Message:  fmt.Sprintf("event %s excluded: %s", id, problem),
			})
			continue
		}
		events = append(events, ev)
	}
	return events, findings
}

// pairGroup validates one event-ID group. It returns the paired event or a
// non-empty problem description.
func pairGroup(id string, group []avadir.Record) (Event, string) {
	var releases, outlines []avadir.Record
	for _, r := range group {
		switch r.Role {
		case avadir.RoleRelease:
			releases = append(releases, r)
		case avadir.RoleOutline:
			outlines = append(outlines, r)
		default:
			return Event{}, fmt.Sprintf("unknown role %q", r.Role)
		}
	}

	if n := len(releases); n != 1 {
		return Event{}, fmt.Sprintf("%d release records, want 1", n)
	}
	if n := len(outlines); n != 1 {
		return Event{}, fmt.Sprintf("%d outline records, want 1", n)
	}
	if releases[0].Attrs() != outlines[0].Attrs() {
		return Event{}, "release and outline attributes differ"
	}
	return Event{ID: id, Release: releases[0], Outline: outlines[0]}, ""
}

// Flatten lays events out as an ordered record sequence, release before
// outline within each pair, stamping every record with the scenario name.
func Flatten(scenarioName string, events []Event) []avadir.Record {
	out := make([]avadir.Record, 0, 2*len(events))
	for _, e := range events {
		rel, outl := e.Release, e.Outline
		rel.Scenario = scenarioName
		outl.Scenario = scenarioName
		out = append(out, rel, outl)
	}
	return out
}
