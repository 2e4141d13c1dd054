package filter

import (
	"strings"

	"incidentdesk/pkg/types"
)

// AllSectors disables the sector predicate.
const AllSectors = "all"

type Criteria struct {
	Sector  string
	Patient string
	Start   string
	End     string
}

func (c Criteria) sectorActive() bool {
	return c.Sector != "" && c.Sector != AllSectors
}

func (c Criteria) patientActive() bool {
	return strings.TrimSpace(c.Patient) != ""
}

// dateActive is true only when both bounds are set.
func (c Criteria) dateActive() bool {
	return c.Start != "" && c.End != ""
}

// Active reports whether any predicate would be applied.
func (c Criteria) Active() bool {
	return c.sectorActive() || c.patientActive() || c.dateActive()
}

// Apply returns the records matching every active predicate, in input order.
// With no active predicate the input slice is returned as is.
func Apply(records []*types.IncidentReport, c Criteria) []*types.IncidentReport {
	if !c.Active() {
		return records
	}

	needle := strings.ToLower(strings.TrimSpace(c.Patient))

	out := make([]*types.IncidentReport, 0, len(records))
	for _, r := range records {
		if c.sectorActive() && r.Sector != c.Sector {
			continue
		}

		if needle != "" {
			if r.PatientName == "" || !strings.Contains(strings.ToLower(r.PatientName), needle) {
				continue
			}
		}

		// occurrence dates are fixed-width ISO strings, so lexical order is date order
		if c.dateActive() && (r.OccurredOn < c.Start || r.OccurredOn > c.End) {
			continue
		}

		out = append(out, r)
	}

	return out
}
