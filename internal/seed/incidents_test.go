package seed

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"incidentdesk/internal/incident"
	"incidentdesk/internal/localstore"
	"incidentdesk/internal/taxonomy"
	"incidentdesk/pkg/types"

	"github.com/sirupsen/logrus"
)

func newService(t *testing.T) *incident.Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := localstore.Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return incident.NewService(store, store, taxonomy.Default())
}

func TestSeedIncidents(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	created, err := SeedIncidents(ctx, svc, rand.New(rand.NewSource(7)), 25, now)
	if err != nil {
		t.Fatalf("SeedIncidents: %v", err)
	}
	if created != 25 {
		t.Fatalf("expected 25 created, got %d", created)
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 25 {
		t.Fatalf("expected 25 stored, got %d", len(records))
	}

	earliest := now.AddDate(0, 0, -120).Format(types.DateLayout)
	catalog := make(map[string]bool)
	for _, c := range svc.Taxonomy().Categories() {
		for _, label := range c.Labels {
			catalog[label] = true
		}
	}
	for _, r := range records {
		if !strings.HasPrefix(r.PatientName, PatientPrefix) {
			t.Errorf("demo patient without prefix: %q", r.PatientName)
		}
		if r.OccurredOn < earliest || r.OccurredOn > now.Format(types.DateLayout) {
			t.Errorf("date %s outside the demo range", r.OccurredOn)
		}
		if len(r.Categories) == 0 || len(r.Categories) > 3 {
			t.Errorf("unexpected category count %d", len(r.Categories))
		}
		for _, label := range r.Categories {
			if !catalog[label] {
				t.Errorf("label %q not in the catalog", label)
			}
		}
	}

	actions, err := svc.Actions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range actions {
		if !a.Status.Valid() {
			t.Errorf("invalid seeded status %q", a.Status)
		}
	}
}

func TestSeedIncidentsNothingToDo(t *testing.T) {
	svc := newService(t)

	created, err := SeedIncidents(context.Background(), svc, rand.New(rand.NewSource(1)), 0, time.Now())
	if err != nil || created != 0 {
		t.Errorf("expected no-op, got %d, %v", created, err)
	}
}

func TestPickWeightedStatus(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := make(map[types.ActionStatus]int)
	for i := 0; i < 500; i++ {
		seen[pickWeightedStatus(rng)]++
	}
	for _, s := range types.ActionStatuses {
		if seen[s] == 0 {
			t.Errorf("status %s never picked", s)
		}
	}
}
