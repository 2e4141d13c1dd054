// Package analytics computes the dashboard and report aggregations over a
// loaded set of incident reports. Every function is pure: callers load the
// records, filter them, and pass the slice in.
package analytics

import (
	"sort"
	"time"

	"incidentdesk/internal/taxonomy"
	"incidentdesk/pkg/types"
)

// NoData is returned by mode queries over an empty set.
const NoData = "N/A"

type Count struct {
	Key   string
	Count int
}

type MonthCount struct {
	Month string // YYYY-MM
	Count int
}

// CategoryGroupCounts counts selected labels by group key. A report with
// several labels contributes once per label.
func CategoryGroupCounts(records []*types.IncidentReport) []Count {
	return countBy(records, func(r *types.IncidentReport) []string {
		keys := make([]string, 0, len(r.Categories))
		for _, label := range r.Categories {
			keys = append(keys, taxonomy.GroupKey(label))
		}
		return keys
	})
}

// CategoryLabelCounts counts selected labels by their full code ("1.12") and
// keeps the first limit entries. A limit of zero keeps everything.
func CategoryLabelCounts(records []*types.IncidentReport, limit int) []Count {
	counts := countBy(records, func(r *types.IncidentReport) []string {
		codes := make([]string, 0, len(r.Categories))
		for _, label := range r.Categories {
			codes = append(codes, taxonomy.LabelCode(label))
		}
		return codes
	})

	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}

	return counts
}

func SectorCounts(records []*types.IncidentReport) []Count {
	return countBy(records, func(r *types.IncidentReport) []string {
		return []string{r.Sector}
	})
}

func PhaseCounts(records []*types.IncidentReport) []Count {
	return countBy(records, func(r *types.IncidentReport) []string {
		return []string{r.Phase}
	})
}

// MonthlyTrend buckets reports by month of occurrence. Months without reports
// are omitted; reports whose date does not parse are skipped.
func MonthlyTrend(records []*types.IncidentReport) []MonthCount {
	buckets := make(map[string]int)
	for _, r := range records {
		occurred, err := time.Parse(types.DateLayout, r.OccurredOn)
		if err != nil {
			continue
		}
		buckets[occurred.Format("2006-01")]++
	}

	out := make([]MonthCount, 0, len(buckets))
	for month, n := range buckets {
		out = append(out, MonthCount{Month: month, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})

	return out
}

func MostFrequentSector(records []*types.IncidentReport) string {
	return mode(SectorCounts(records))
}

func MostFrequentPhase(records []*types.IncidentReport) string {
	return mode(PhaseCounts(records))
}

// mode relies on the ordering of countBy: highest count first, ties broken
// by ascending key.
func mode(counts []Count) string {
	if len(counts) == 0 {
		return NoData
	}
	return counts[0].Key
}

// countBy tallies the keys produced for each record and orders the result by
// count descending, then key ascending.
func countBy(records []*types.IncidentReport, keys func(*types.IncidentReport) []string) []Count {
	tally := make(map[string]int)
	for _, r := range records {
		for _, k := range keys(r) {
			tally[k]++
		}
	}

	out := make([]Count, 0, len(tally))
	for k, n := range tally {
		out = append(out, Count{Key: k, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})

	return out
}
