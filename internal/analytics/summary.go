package analytics

import (
	"time"

	"incidentdesk/pkg/types"
)

// DefaultRateDenominator is the sessions-per-month figure used when none is configured.
const DefaultRateDenominator = 1000

type Summary struct {
	Total          int
	ThisMonth      int
	Rate           float64
	PendingActions int
}

type General struct {
	Total     int
	TopSector string
	TopPhase  string
}

// Rate expresses count as a percentage of denominator.
func Rate(count, denominator int) float64 {
	if count <= 0 || denominator <= 0 {
		return 0
	}
	return float64(count) / float64(denominator) * 100
}

// CountSince counts reports that occurred on or after since's date.
func CountSince(records []*types.IncidentReport, since time.Time) int {
	return len(SelectSince(records, since))
}

// Summarize builds the dashboard headline figures. A report counts as a
// pending action when it has a suggestion and its action is not done.
func Summarize(records []*types.IncidentReport, actions []*types.CorrectiveAction, now time.Time, denominator int) Summary {
	status := make(map[int64]types.ActionStatus, len(actions))
	for _, a := range actions {
		status[a.IncidentID] = a.Status
	}

	thisMonth := CountSince(records, MonthStart(now))

	pending := 0
	for _, r := range records {
		if !r.HasSuggestion() {
			continue
		}
		if status[r.ID] == types.ActionStatusDone {
			continue
		}
		pending++
	}

	return Summary{
		Total:          len(records),
		ThisMonth:      thisMonth,
		Rate:           Rate(thisMonth, denominator),
		PendingActions: pending,
	}
}

func Overview(records []*types.IncidentReport) General {
	return General{
		Total:     len(records),
		TopSector: MostFrequentSector(records),
		TopPhase:  MostFrequentPhase(records),
	}
}
