package scenario

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/OpenNHM/AvaScenarioMapper/internal/avadir"
	"github.com/OpenNHM/AvaScenarioMapper/internal/legend"
	"github.com/OpenNHM/AvaScenarioMapper/internal/logging"
)

func TestEngine_WinterScenario(t *testing.T) {
	table := tableOf(
		pairFor("ev1", "praA", nil), // dry, N, 1900-2100, in region
		pairFor("ev2", "praB", func(r *avadir.Record) { r.Flow = "wet" }),
		pairFor("ev3", "praC", func(r *avadir.Record) { r.LKGebietID = "AT-07" }),
	)

	res, err := NewEngine(winterCriteria(), nil).Run(table)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Events != 1 {
		t.Fatalf("events = %d, want 1", res.Events)
	}
	if res.Records[0].EventID != "ev1" {
		t.Errorf("surviving event = %s, want ev1", res.Records[0].EventID)
	}
	for _, r := range res.Records {
		if r.Scenario != "winter" {
			t.Errorf("record %s not stamped with scenario name", r.EventID)
		}
	}
	if len(res.Findings) != 0 {
		t.Errorf("unexpected findings: %v", res.Findings)
	}
}

func TestEngine_EmptyMatchIsNotError(t *testing.T) {
	table := tableOf(pairFor("ev1", "praA", nil))
	crit := Criteria{
		Name:  "nothing",
		Flows: RestrictStrings([]string{"wet"}),
	}
	eng := NewEngine(crit, nil)
	res, err := eng.Run(table)
	if err != nil {
		t.Fatalf("an empty match must not be an error, got %v", err)
	}
	if res.Events != 0 || len(res.Records) != 0 {
		t.Fatalf("expected empty result, got %d events", res.Events)
	}
	if len(res.Findings) != 1 || res.Findings[0].Kind != FindingEmptyResult {
		t.Fatalf("expected one empty-result finding, got %v", res.Findings)
	}
	if eng.Stage() != StageDone {
		t.Errorf("stage = %s, want done", eng.Stage())
	}
}

func TestEngine_SourceTableNeverMutated(t *testing.T) {
	table := tableOf(pairFor("ev1", "praA", nil))
	want := make([]avadir.Record, len(table.Records))
	copy(want, table.Records)

	if _, err := NewEngine(winterCriteria(), nil).Run(table); err != nil {
		t.Fatalf("Run: %v", err)
	}
	opts := cmpopts.IgnoreFields(avadir.Record{}, "Geometry")
	if diff := cmp.Diff(want, table.Records, opts); diff != "" {
		t.Errorf("source table mutated (-want +got):\n%s", diff)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	table := tableOf(
		pairFor("ev1", "praA", func(r *avadir.Record) { r.RSize = 3 }),
		pairFor("ev2", "praA", func(r *avadir.Record) { r.RSize = 5 }),
		pairFor("ev3", "praB", nil),
	)
	crit := winterCriteria()
	crit.SingleRSize = true

	first, err := NewEngine(crit, nil).Run(table)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := NewEngine(crit, nil).Run(table)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	opts := cmpopts.IgnoreFields(avadir.Record{}, "Geometry")
	if diff := cmp.Diff(first, second, opts); diff != "" {
		t.Errorf("engine not idempotent (-first +second):\n%s", diff)
	}
}

func TestEngine_SingleRSizeRule(t *testing.T) {
	table := tableOf(
		pairFor("ev1", "praA", func(r *avadir.Record) { r.RSize = 3 }),
		pairFor("ev2", "praA", func(r *avadir.Record) { r.RSize = 5 }),
	)

	crit := Criteria{Name: "dedup", SingleRSize: true}
	res, err := NewEngine(crit, nil).Run(table)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Events != 1 || res.Records[0].EventID != "ev2" {
		t.Fatalf("expected only ev2 to survive, got %d events", res.Events)
	}

	// Flag unset: both events pass through.
	crit.SingleRSize = false
	res, err = NewEngine(crit, nil).Run(table)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Events != 2 {
		t.Errorf("without the flag both events should survive, got %d", res.Events)
	}
}

func TestEngine_MalformedEventExcludedNotFatal(t *testing.T) {
	lonely := pairFor("evBad", "praX", nil)[:1] // release without outline
	table := tableOf(pairFor("evGood", "praY", nil), lonely)

	res, err := NewEngine(Criteria{Name: "s"}, nil).Run(table)
	if err != nil {
		t.Fatalf("malformed events must not abort the run: %v", err)
	}
	if res.Events != 1 {
		t.Fatalf("events = %d, want 1", res.Events)
	}
	if len(res.Findings) != 1 || res.Findings[0].Kind != FindingMalformedEvent {
		t.Fatalf("expected one malformed-event finding, got %v", res.Findings)
	}
	if res.Findings[0].EventID != "evBad" {
		t.Errorf("finding names %q, want evBad", res.Findings[0].EventID)
	}
}

func TestEngine_EmptyLegendSelection(t *testing.T) {
	table := tableOf(pairFor("ev1", "praA", nil))
	crit := Criteria{
		Name:       "legendless",
		Potentials: RestrictStrings([]string{"low"}),
		AvaSize:    intPtr(5), // the matrix has no low/5 block
	}
	res, err := NewEngine(crit, legend.Default()).Run(table)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Events != 0 {
		t.Errorf("empty legend selection should match nothing, got %d events", res.Events)
	}
	var kinds []FindingKind
	for _, f := range res.Findings {
		kinds = append(kinds, f.Kind)
	}
	if len(kinds) != 2 || kinds[0] != FindingEmptyLegend || kinds[1] != FindingEmptyResult {
		t.Errorf("findings = %v, want [empty_legend empty_result]", kinds)
	}
}

func TestEngine_DoneLogReportsReleaseAreas(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(slog.LevelInfo, "text", &buf)
	defer logging.Init(slog.LevelInfo, "text")

	// Two events on the same release area, kept apart by SingleRSize off.
	table := tableOf(
		pairFor("ev1", "praA", nil),
		pairFor("ev2", "praA", nil),
	)
	if _, err := NewEngine(Criteria{Name: "s", SingleRSize: false}, nil).Run(table); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "events=2") {
		t.Errorf("completion log missing event count: %s", out)
	}
	if !strings.Contains(out, "release_areas=1") {
		t.Errorf("completion log missing unique release-area count: %s", out)
	}
}

func TestEngine_NilTableFails(t *testing.T) {
	eng := NewEngine(Criteria{Name: "s"}, nil)
	if _, err := eng.Run(nil); err == nil {
		t.Fatal("nil table should be a fatal input error")
	}
	if eng.Stage() != StageFailed {
		t.Errorf("stage = %s, want failed", eng.Stage())
	}
}

func TestEngine_SingleUse(t *testing.T) {
	table := tableOf(pairFor("ev1", "praA", nil))
	eng := NewEngine(Criteria{Name: "s"}, nil)
	if _, err := eng.Run(table); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := eng.Run(table); err == nil {
		t.Error("second Run on the same engine should fail")
	}
}
