package analytics

import (
	"reflect"
	"testing"

	"incidentdesk/pkg/types"
)

func incident(id int64, sector, phase, date string, categories ...string) *types.IncidentReport {
	return &types.IncidentReport{
		ID:          id,
		Sector:      sector,
		Phase:       phase,
		OccurredOn:  date,
		PatientName: "Paciente",
		Categories:  categories,
	}
}

func TestCategoryGroupCounts(t *testing.T) {
	records := []*types.IncidentReport{
		incident(1, "B1", "Durante a Diálise", "2024-01-05", "1.1 - X", "1.2 - Y", "2.1 - Z"),
		incident(2, "B2", "Durante a Diálise", "2024-01-06", "5.12 - Hipotensão (<100x60)"),
		incident(3, "B2", "Pós Diálise", "2024-01-07", "1.10 - FAV parada"),
	}

	got := CategoryGroupCounts(records)
	want := []Count{{"1", 3}, {"2", 1}, {"5", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryGroupCounts = %v, want %v", got, want)
	}
}

func TestCategoryGroupCountsSingleRecordMultipleGroups(t *testing.T) {
	records := []*types.IncidentReport{
		incident(1, "B1", "Consulta", "2024-01-05", "1.1 - X", "1.2 - Y", "2.1 - Z"),
	}

	got := CategoryGroupCounts(records)
	want := []Count{{"1", 2}, {"2", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryGroupCounts = %v, want %v", got, want)
	}
}

func TestCategoryLabelCounts(t *testing.T) {
	records := []*types.IncidentReport{
		incident(1, "B1", "Consulta", "2024-01-05", "1.1 - X", "1.12 - Y"),
		incident(2, "B1", "Consulta", "2024-01-05", "1.12 - Y"),
		incident(3, "B1", "Consulta", "2024-01-05", "3.3 - Z"),
	}

	got := CategoryLabelCounts(records, 2)
	want := []Count{{"1.12", 2}, {"1.1", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryLabelCounts = %v, want %v", got, want)
	}

	if all := CategoryLabelCounts(records, 0); len(all) != 3 {
		t.Errorf("expected 3 codes without limit, got %v", all)
	}
}

func TestSectorAndPhaseCounts(t *testing.T) {
	records := []*types.IncidentReport{
		incident(1, "B1", "Consulta", "2024-01-05"),
		incident(2, "B1", "Pós Diálise", "2024-01-20"),
		incident(3, "B2", "Pós Diálise", "2024-02-01"),
	}

	if got, want := SectorCounts(records), []Count{{"B1", 2}, {"B2", 1}}; !reflect.DeepEqual(got, want) {
		t.Errorf("SectorCounts = %v, want %v", got, want)
	}
	if got, want := PhaseCounts(records), []Count{{"Pós Diálise", 2}, {"Consulta", 1}}; !reflect.DeepEqual(got, want) {
		t.Errorf("PhaseCounts = %v, want %v", got, want)
	}
}

func TestCountOrderingTieBreak(t *testing.T) {
	records := []*types.IncidentReport{
		incident(1, "B3", "x", "2024-01-01"),
		incident(2, "B1", "x", "2024-01-01"),
		incident(3, "B2", "x", "2024-01-01"),
		incident(4, "B2", "x", "2024-01-01"),
	}

	got := SectorCounts(records)
	want := []Count{{"B2", 2}, {"B1", 1}, {"B3", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SectorCounts = %v, want %v", got, want)
	}
}

func TestMonthlyTrend(t *testing.T) {
	records := []*types.IncidentReport{
		incident(1, "B1", "x", "2024-02-01"),
		incident(2, "B1", "x", "2023-11-30"),
		incident(3, "B1", "x", "2024-01-05"),
		incident(4, "B1", "x", "2024-01-20"),
		incident(5, "B1", "x", "not-a-date"),
	}

	got := MonthlyTrend(records)
	want := []MonthCount{{"2023-11", 1}, {"2024-01", 2}, {"2024-02", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MonthlyTrend = %v, want %v", got, want)
	}

	for i, m := range got {
		if m.Count == 0 {
			t.Errorf("month %s has zero count", m.Month)
		}
		if i > 0 && got[i-1].Month >= m.Month {
			t.Errorf("months out of order: %s then %s", got[i-1].Month, m.Month)
		}
	}
}

func TestMonthlyTrendEmpty(t *testing.T) {
	if got := MonthlyTrend(nil); len(got) != 0 {
		t.Errorf("expected empty trend, got %v", got)
	}
}

func TestMostFrequent(t *testing.T) {
	records := []*types.IncidentReport{
		incident(1, "B2", "Consulta", "2024-01-05"),
		incident(2, "B1", "Durante a Diálise", "2024-01-20"),
		incident(3, "B2", "Durante a Diálise", "2024-02-01"),
	}

	if got := MostFrequentSector(records); got != "B2" {
		t.Errorf("MostFrequentSector = %q", got)
	}
	if got := MostFrequentPhase(records); got != "Durante a Diálise" {
		t.Errorf("MostFrequentPhase = %q", got)
	}

	tie := records[:2]
	if got := MostFrequentSector(tie); got != "B1" {
		t.Errorf("tie should resolve to the smallest value, got %q", got)
	}
}

func TestMostFrequentEmpty(t *testing.T) {
	if got := MostFrequentSector(nil); got != NoData {
		t.Errorf("MostFrequentSector(nil) = %q, want %q", got, NoData)
	}
	if got := MostFrequentPhase([]*types.IncidentReport{}); got != NoData {
		t.Errorf("MostFrequentPhase(empty) = %q, want %q", got, NoData)
	}
}

// Three reports, two in B1 and one in B2, across January and February.
func TestEndToEndScenario(t *testing.T) {
	records := []*types.IncidentReport{
		incident(1, "B1", "Consulta", "2024-01-05", "1.1 - X"),
		incident(2, "B1", "Consulta", "2024-01-20", "2.1 - Y"),
		incident(3, "B2", "Consulta", "2024-02-01", "3.1 - Z"),
	}

	if got, want := SectorCounts(records), []Count{{"B1", 2}, {"B2", 1}}; !reflect.DeepEqual(got, want) {
		t.Errorf("SectorCounts = %v, want %v", got, want)
	}
	if got, want := MonthlyTrend(records), []MonthCount{{"2024-01", 2}, {"2024-02", 1}}; !reflect.DeepEqual(got, want) {
		t.Errorf("MonthlyTrend = %v, want %v", got, want)
	}
}
