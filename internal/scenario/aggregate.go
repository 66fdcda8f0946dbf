package scenario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/OpenNHM/AvaScenarioMapper/internal/avadir"
	"github.com/OpenNHM/AvaScenarioMapper/internal/legend"
	"github.com/OpenNHM/AvaScenarioMapper/internal/logging"
)

// MasterName is the scenario tag of the combined dataset.
const MasterName = "avaScen_Master"

// BatchOptions configures a multi-scenario run.
type BatchOptions struct {
	// Parallel bounds concurrent scenario evaluations; values < 1 mean
	// serial.
	Parallel int

	// MakeMaster requests the concatenated master dataset.
	MakeMaster bool

	// MasterDedup re-applies the single-rSize rule across the combined
	// set. This is an explicit configuration choice: scenarios may
	// legitimately share release areas, and collapsing them across
	// scenario boundaries must be asked for.
	MasterDedup bool
}

// Outcome is the per-scenario slot of a batch report. Exactly one of
// Result and Err is set: an engine failure in one scenario never aborts
// its siblings.
type Outcome struct {
	Scenario string  `json:"scenario"`
	Result   *Result `json:"result,omitempty"`
	Err      error   `json:"-"`
}

// Report is the outcome of one whole batch.
type Report struct {
	RunID    string        `json:"runID"`
	Outcomes []Outcome     `json:"outcomes"`
	Master   *Result       `json:"master,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Findings returns all findings of the batch in scenario order, master
// last.
func (r *Report) Findings() []Finding {
	var out []Finding
	for _, o := range r.Outcomes {
		if o.Result != nil {
			out = append(out, o.Result.Findings...)
		}
	}
	if r.Master != nil {
		out = append(out, r.Master.Findings...)
	}
	return out
}

// RunAll evaluates every criteria against the shared table, each scenario
// on its own goroutine over the same read-only data. Outcomes are returned
// in criteria order regardless of completion order. Only context
// cancellation stops the batch early; per-scenario failures are captured
// in their Outcome.
func RunAll(ctx context.Context, table *avadir.Table, criteriaList []Criteria, matrix *legend.Matrix, opts BatchOptions) (*Report, error) {
	start := time.Now()
	log := logging.New("aggregator")

	report := &Report{
		RunID:    uuid.NewString(),
		Outcomes: make([]Outcome, len(criteriaList)),
	}
	log.Info("starting batch", "run_id", report.RunID, "scenarios", len(criteriaList))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	} else {
		g.SetLimit(1)
	}

	for i, c := range criteriaList {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := NewEngine(c, matrix).Run(table)
			report.Outcomes[i] = Outcome{Scenario: c.Name, Result: res, Err: err}
			if err != nil {
				log.Error("scenario failed", "scenario", c.Name, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.MakeMaster {
		report.Master = combine(report.Outcomes, opts.MasterDedup)
		log.Info("master dataset combined",
			"events", report.Master.Events, "records", len(report.Master.Records))
	}

	report.Duration = time.Since(start)
	return report, nil
}

// combine concatenates all successful scenario results into the master
// dataset. Records keep their source scenario stamp. With dedup requested
// the single-rSize rule runs again across the combined set, ignoring
// scenario boundaries.
func combine(outcomes []Outcome, dedup bool) *Result {
	master := &Result{Scenario: MasterName}
	var records []avadir.Record
	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		records = append(records, o.Result.Records...)
	}

	if !dedup {
		events := 0
		for _, r := range records {
			if r.Role == avadir.RoleRelease {
				events++
			}
		}
		master.Events = events
		master.Records = records
		return master
	}

	// Rebuild events pairwise; the per-scenario engines already validated
	// pairing, so records arrive as adjacent release/outline pairs.
	var events []Event
	for i := 0; i+1 < len(records); i += 2 {
		events = append(events, Event{
			ID:      records[i].EventID,
			Release: records[i],
			Outline: records[i+1],
		})
	}
	deduped, findings := Deduplicate(MasterName, events)
	master.Findings = append(master.Findings, findings...)
	master.Events = len(deduped)

	// Keep the scenario stamps the records already carry.
	for _, e := range deduped {
		master.Records = append(master.Records, e.Release, e.Outline)
	}
	return master
}
