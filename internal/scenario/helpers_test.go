package scenario

import "github.com/OpenNHM/AvaScenarioMapper/internal/avadir"

// pairFor builds the release/outline record pair of one well-formed event.
// mutate, when non-nil, is applied to both records before splitting roles.
func pairFor(eventID, praID string, mutate func(*avadir.Record)) []avadir.Record {
	base := avadir.Record{
		EventID:      eventID,
		PraID:        praID,
		LKGebietID:   "IT-32-BZ-18-02",
		LWDGebietID:  "LWD-07",
		SubC:         3,
		Sector:       "N",
		ElevMin:      1900,
		ElevMax:      2100,
		Flow:         "dry",
		AvaPotential: "high",
		PPM:          4,
		PEM:          3,
		RSize:        4,
		PraAreaM:     52000,
	}
	if mutate != nil {
		mutate(&base)
	}
	rel := base
	rel.Role = avadir.RoleRelease
	outl := base
	outl.Role = avadir.RoleOutline
	return []avadir.Record{rel, outl}
}

func tableOf(records ...[]avadir.Record) *avadir.Table {
	t := &avadir.Table{}
	for _, pair := range records {
		t.Records = append(t.Records, pair...)
	}
	return t
}

func intPtr(v int) *int { return &v }
