package scenario

import "fmt"

// FindingKind classifies a data-quality finding produced while running one
// scenario. Findings are values, not errors: they are collected alongside
// the result and never abort sibling scenarios.
type FindingKind string

const (
	// FindingMalformedEvent marks an event-ID group violating the
	// one-release/one-outline invariant or carrying mismatched paired
	// attributes. The event is excluded from the result.
	FindingMalformedEvent FindingKind = "malformed_event"

	// FindingEmptyResult marks a scenario that matched no events. Absence
	// of avalanches in a filter window is a legitimate outcome.
	FindingEmptyResult FindingKind = "empty_result"

	// FindingDedupTie marks a release-area group where several events tied
	// for the maximal relative size; the deterministic tie-break kept the
	// lexicographically smallest event ID.
	FindingDedupTie FindingKind = "dedup_tie"

	// FindingEmptyLegend marks a criteria whose hazard potential and size
	// selection has no admissible combination in the legend matrix.
	FindingEmptyLegend FindingKind = "empty_legend"
)

// Finding is one structured data-quality observation attached to a
// scenario run, for an external reporter to render.
type Finding struct {
	Scenario string      `json:"scenario"`
	Kind     FindingKind `json:"kind"`
	EventID  string      `json:"eventID,omitempty"`
	PraID    string      `json:"praID,omitempty"`
	Message  string      `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Scenario, f.Kind, f.Message)
}
