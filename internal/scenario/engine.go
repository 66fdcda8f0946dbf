package scenario

import (
	"fmt"
	"log/slog"

	"github.com/OpenNHM/AvaScenarioMapper/internal/avadir"
	"github.com/OpenNHM/AvaScenarioMapper/internal/legend"
	"github.com/OpenNHM/AvaScenarioMapper/internal/logging"
)

// Stage tracks the engine through its run. The progression is linear;
// StageFailed is terminal and reachable from any stage on a fatal input
// error.
type Stage int

const (
	StageInitialized Stage = iota
	StageRegionFiltered
	StageAttributeFiltered
	StagePaired
	StageDeduplicated
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageInitialized:       "initialized",
	StageRegionFiltered:    "region_filtered",
	StageAttributeFiltered: "attribute_filtered",
	StagePaired:            "paired",
	StageDeduplicated:      "deduplicated",
	StageDone:              "done",
	StageFailed:            "failed",
}

func (s Stage) String() string { return stageNames[s] }

// Result is the immutable outcome of one engine run: the ordered, paired,
// scenario-stamped records plus the findings collected along the way.
type Result struct {
	Scenario string          `json:"scenario"`
	Events   int             `json:"events"`
	Records  []avadir.Record `json:"-"`
	Findings []Finding       `json:"findings,omitempty"`
}

// Engine runs one scenario criteria against the shared read-only source
// table. Engines are single-use: construct, Run once, inspect.
type Engine struct {
	criteria Criteria
	matrix   *legend.Matrix
	log      *slog.Logger
	stage    Stage
}

// NewEngine creates an engine for one criteria. matrix may be nil when the
// criteria carries no legend selection.
func NewEngine(criteria Criteria, matrix *legend.Matrix) *Engine {
	return &Engine{
		criteria: criteria,
		matrix:   matrix,
		log:      logging.New("scenario").With(slog.String("scenario", criteria.Name)),
		stage:    StageInitialized,
	}
}

// Stage reports the stage the engine last reached.
func (e *Engine) Stage() Stage { return e.stage }

// Run evaluates the criteria against the table:
// region filter, attribute filter, pairing, optional deduplication.
// The table is never mutated; result records are stamped copies. A nil or
// empty table is a fatal input error; an empty match is not.
func (e *Engine) Run(table *avadir.Table) (*Result, error) {
	if e.stage != StageInitialized {
		prev := e.stage
		e.stage = StageFailed
		return nil, fmt.Errorf("scenario %q: engine already ran (stage %s)", e.criteria.Name, prev)
	}
	if table == nil || table.Len() == 0 {
		e.stage = StageFailed
		return nil, fmt.Errorf("scenario %q: no source table", e.criteria.Name)
	}

	res := &Result{Scenario: e.criteria.Name}

	// Region filter.
	var survivors []avadir.Record
	for _, r := range table.Records {
		if MatchRegion(e.criteria, r) {
			survivors = append(survivors, r)
		}
	}
	e.stage = StageRegionFiltered
	e.log.Debug("region filter applied", "kept", len(survivors), "of", table.Len())

	// Attribute and legend filters.
	allowed := tripleAllow(e.criteria, e.matrix)
	if allowed != nil && len(allowed) == 0 {
		res.Findings = append(res.Findings, Finding{
			Scenario: e.criteria.Name,
			Kind:     FindingEmptyLegend,
			Message: fmt.Sprintf("legend selection empty for potentials=%v, size=%d",
				e.criteria.Potentials.Values(), *e.criteria.AvaSize),
		})
	}
	n := 0
	for _, r := range survivors {
		if !MatchAttributes(e.criteria, r) {
			continue
		}
		if allowed != nil && !matchTriple(allowed, r) {
			continue
		}
		survivors[n] = r
		n++
	}
	survivors = survivors[:n]
	e.stage = StageAttributeFiltered
	e.log.Debug("attribute filter applied", "kept", n)

	// Pairing.
	events, pairFindings := BuildPairs(e.criteria.Name, survivors)
	res.Findings = append(res.Findings, pairFindings...)
	e.stage = StagePaired

	// Deduplication.
	if e.criteria.SingleRSize {
		var tieFindings []Finding
		before := len(events)
		events, tieFindings = Deduplicate(e.criteria.Name, events)
		res.Findings = append(res.Findings, tieFindings...)
		e.log.Debug("single-rSize rule applied", "dropped", before-len(events))
	}
	e.stage = StageDeduplicated

	if len(events) == 0 {
		res.Findings = append(res.Findings, Finding{
			Scenario: e.criteria.Name,
			Kind:     FindingEmptyResult,
			Message:  "scenario matched no events",
		})
	}

	pras := make(map[string]struct{}, len(events))
	for _, ev := range events {
		pras[ev.PraID()] = struct{}{}
	}

	res.Events = len(events)
	res.Records = Flatten(e.criteria.Name, events)
	e.stage = StageDone
	e.log.Info("scenario done",
		"events", res.Events, "release_areas", len(pras),
		"records", len(res.Records), "findings", len(res.Findings))
	return res, nil
}
