package scenario

import (
	"fmt"
	"sort"
	"strings"
)

// Deduplicate applies the single-largest-relative-size rule: within each
// release-area group only the event with the maximal rSize survives. Ties
// on rSize are broken deterministically by keeping the lexicographically
// smallest event ID, and every tie is reported as a finding so the choice
// can be audited. Events move or drop as whole release/outline pairs.
//
// The input order is preserved for the surviving events.
func Deduplicate(scenarioName string, events []Event) ([]Event, []Finding) {
	type winner struct {
		idx int // position in events
	}
	best := make(map[string]winner)
	ties := make(map[string][]string) // praID -> event IDs tied at max rSize

	for i, e := range events {
		pra := e.PraID()
		cur, ok := best[pra]
		if !ok {
			best[pra] = winner{idx: i}
			continue
		}
		kept := events[cur.idx]
		switch {
		case e.RSize() > kept.RSize():
			best[pra] = winner{idx: i}
			delete(ties, pra)
		case e.RSize() == kept.RSize():
			if e.ID < kept.ID {
				ties[pra] = append(ties[pra], kept.ID)
				best[pra] = winner{idx: i}
			} else {
				ties[pra] = append(ties[pra], e.ID)
			}
		}
	}

	keepIdx := make(map[int]bool, len(best))
	for _, w := range best {
		keepIdx[w.idx] = true
	}

	var out []Event
	for i, e := range events {
		if keepIdx[i] {
			out = append(out, e)
		}
	}

	var findings []Finding
	pras := make([]string, 0, len(ties))
	for pra := range ties {
		pras = append(pras, pra)
	}
	sort.Strings(pras)
	for _, pra := range pras {
		dropped := ties[pra]
		sort.Strings(dropped)
		keptID := events[best[pra].idx].ID
		findings = append(findings, Finding{
			Scenario: scenarioName,
			Kind:     FindingDedupTie,
			EventID:  keptID,
			PraID:    pra,
			Message: fmt.Sprintf("release area %s: rSize tie, kept %s, dropped %s",
				pra, keptID, strings.Join(dropped, ", ")),
		})
	}
	return out, findings
}
