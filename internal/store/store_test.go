package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"incidentdesk/internal/db"
	"incidentdesk/internal/utils"
	"incidentdesk/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestBuildUpdateClause(t *testing.T) {
	got := buildUpdateClause(map[string]any{
		"status":     "done",
		"owner":      "Enf. Maria Santos",
		"updated_at": time.Now(),
	})

	want := "owner = EXCLUDED.owner, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at"
	if got != want {
		t.Errorf("buildUpdateClause = %q, want %q", got, want)
	}
}

func TestIncidentColumns(t *testing.T) {
	for _, c := range incidentColumns {
		if c == "categories" {
			t.Fatal("categories must not be selected from the report table")
		}
	}
	if len(incidentColumns) != 9 {
		t.Errorf("expected 9 report columns, got %v", incidentColumns)
	}
}

// testPool connects to TEST_DATABASE_URL; the test is skipped when unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, &types.Config{DatabaseURL: url})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return pool
}

func TestIncidentRepositoryRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewIncidentRepository(pool)

	patient := "Paciente " + utils.NanoIDSize(8)
	before := time.Now()

	first := &types.IncidentReport{
		OccurredOn:  "2024-01-05",
		Responsible: "Enf. João Silva",
		Sector:      "B1",
		Phase:       "Durante a Diálise",
		PatientName: patient,
		PatientAge:  61,
		Categories:  []string{"1.1 - Desconexão acidental da agulha", "2.1 - Cadeira"},
		Suggestion:  utils.StringPtr("revisar fixação"),
	}
	if err := repo.CreateIncident(ctx, first); err != nil {
		t.Fatalf("CreateIncident: %v", err)
	}

	second := &types.IncidentReport{
		OccurredOn:  "2024-01-20",
		Responsible: "Enf. Ana Oliveira",
		Sector:      "B2",
		Phase:       "Consulta",
		PatientName: patient,
		Categories:  []string{"3.3 - Reação Adversa"},
	}
	if err := repo.CreateIncident(ctx, second); err != nil {
		t.Fatalf("CreateIncident: %v", err)
	}

	if second.ID <= first.ID {
		t.Errorf("ids not increasing: %d then %d", first.ID, second.ID)
	}
	if first.CreatedAt.Before(before) || first.CreatedAt.After(time.Now()) {
		t.Errorf("created_at %s outside insert window", first.CreatedAt)
	}

	got, err := repo.Incident(ctx, first.ID)
	if err != nil {
		t.Fatalf("Incident: %v", err)
	}
	if got.PatientName != patient || got.PatientAge != 61 || utils.PtrString(got.Suggestion) != "revisar fixação" {
		t.Errorf("unexpected incident %+v", got)
	}
	if len(got.Categories) != 2 || got.Categories[1] != "2.1 - Cadeira" {
		t.Errorf("unexpected categories %v", got.Categories)
	}

	all, err := repo.Incidents(ctx)
	if err != nil {
		t.Fatalf("Incidents: %v", err)
	}
	found := 0
	for i, r := range all {
		if i > 0 && all[i-1].ID >= r.ID {
			t.Fatalf("incidents not ordered by id")
		}
		if r.PatientName == patient {
			found++
		}
	}
	if found != 2 {
		t.Errorf("expected both new incidents in the listing, found %d", found)
	}

	if _, err := repo.Incident(ctx, -1); !errors.Is(err, types.ErrIncidentNotFound) {
		t.Errorf("expected ErrIncidentNotFound, got %v", err)
	}
}

func TestActionRepositoryUpsert(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	incidents := NewIncidentRepository(pool)
	actions := NewActionRepository(pool)

	incident := &types.IncidentReport{
		OccurredOn:  "2024-02-01",
		Responsible: "Enf. Pedro Costa",
		Sector:      "B3",
		Phase:       "Pós Diálise",
		PatientName: "Paciente " + utils.NanoIDSize(8),
		Categories:  []string{"5.2 - Cãibra"},
		Suggestion:  utils.StringPtr("orientar hidratação"),
	}
	if err := incidents.CreateIncident(ctx, incident); err != nil {
		t.Fatalf("CreateIncident: %v", err)
	}

	first := &types.CorrectiveAction{IncidentID: incident.ID, Status: types.ActionStatusPending, Owner: "Enf. Pedro Costa", DueOn: "2024-02-08"}
	if err := actions.UpsertAction(ctx, first); err != nil {
		t.Fatalf("UpsertAction: %v", err)
	}

	second := &types.CorrectiveAction{IncidentID: incident.ID, Status: types.ActionStatusDone, Owner: "Enf. Maria Santos", DueOn: "2024-02-10"}
	if err := actions.UpsertAction(ctx, second); err != nil {
		t.Fatalf("UpsertAction: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert replaced id %s with %s", first.ID, second.ID)
	}

	all, err := actions.Actions(ctx)
	if err != nil {
		t.Fatalf("Actions: %v", err)
	}
	for _, a := range all {
		if a.IncidentID == incident.ID {
			if a.Status != types.ActionStatusDone || a.Owner != "Enf. Maria Santos" || a.DueOn != "2024-02-10" {
				t.Errorf("unexpected stored action %+v", a)
			}
			return
		}
	}
	t.Error("stored action not found")
}
