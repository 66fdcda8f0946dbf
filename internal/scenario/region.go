package scenario

import "github.com/OpenNHM/AvaScenarioMapper/internal/avadir"

// MatchRegion evaluates the region restriction of a criteria against one
// record. With both region filters unrestricted every record matches.
// With exactly one restricted filter that filter alone decides and the
// region mode is ignored. Only when both are restricted does the mode
// combine the two memberships.
func MatchRegion(c Criteria, r avadir.Record) bool {
	lkRestricted := c.LKRegions.Restricted()
	lwdRestricted := c.LWDRegions.Restricted()

	switch {
	case !lkRestricted && !lwdRestricted:
		return true
	case lkRestricted && !lwdRestricted:
		return c.LKRegions.Allows(r.LKGebietID)
	case !lkRestricted && lwdRestricted:
		return c.LWDRegions.Allows(r.LWDGebietID)
	}

	inLK := c.LKRegions.Allows(r.LKGebietID)
	inLWD := c.LWDRegions.Allows(r.LWDGebietID)
	if c.RegionMode == RegionAnd {
		return inLK && inLWD
	}
	return inLK || inLWD
}
