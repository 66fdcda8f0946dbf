package scenario

import (
	"strings"

	"github.com/OpenNHM/AvaScenarioMapper/internal/avadir"
	"github.com/OpenNHM/AvaScenarioMapper/internal/legend"
)

// MatchAttributes evaluates the physical and hazard filters of a criteria
// against one record: subcatchment, sector, flow, hazard potential and
// size-class memberships plus inclusive elevation overlap. Unrestricted
// filters never exclude.
func MatchAttributes(c Criteria, r avadir.Record) bool {
	if !c.SubCs.Allows(r.SubC) {
		return false
	}
	if !c.Sectors.Allows(r.Sector) {
		return false
	}
	if !c.Flows.Allows(strings.ToLower(r.Flow)) {
		return false
	}
	if !c.Potentials.Allows(r.AvaPotential) {
		return false
	}
	if !c.SizeClasses.Allows(r.PEM) {
		return false
	}
	return c.Elevation.Overlaps(r.ElevMin, r.ElevMax)
}

// tripleAllow builds a membership test over legend triples. A nil return
// means the legend filter is not active for this criteria.
func tripleAllow(c Criteria, m *legend.Matrix) map[legend.Triple]bool {
	if !c.Potentials.Restricted() || c.AvaSize == nil || m == nil {
		return nil
	}
	allowed := make(map[legend.Triple]bool)
	for _, tr := range m.Triples(c.Potentials.Values(), *c.AvaSize) {
		allowed[tr] = true
	}
	return allowed
}

// matchTriple tests a record against the admissible legend triples.
func matchTriple(allowed map[legend.Triple]bool, r avadir.Record) bool {
	return allowed[legend.Triple{PPM: r.PPM, PEM: r.PEM, RSize: r.RSize}]
}
