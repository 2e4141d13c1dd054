package incident

import (
	"context"
	"errors"
	"testing"
	"time"

	"incidentdesk/pkg/types"
)

func TestActionBoard(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	noSuggestion := validForm()
	if _, err := svc.Create(ctx, noSuggestion); err != nil {
		t.Fatal(err)
	}

	withSuggestion := validForm()
	withSuggestion.Suggestion = "treinar equipe"
	first, err := svc.Create(ctx, withSuggestion)
	if err != nil {
		t.Fatal(err)
	}

	another := validForm()
	another.Suggestion = "revisar checklist"
	second, err := svc.Create(ctx, another)
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.SaveAction(ctx, second.ID, &types.ActionForm{
		Status: types.ActionStatusInProgress,
		Owner:  "Enf. Pedro Costa",
		DueOn:  "2024-02-20",
	})
	if err != nil {
		t.Fatalf("SaveAction: %v", err)
	}

	items, err := svc.ActionBoard(ctx, now)
	if err != nil {
		t.Fatalf("ActionBoard: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 board items, got %d", len(items))
	}

	def := items[0]
	if def.Incident.ID != first.ID || def.Saved {
		t.Errorf("first item should be the unsaved default for %d", first.ID)
	}
	if def.Action.Status != types.ActionStatusPending || def.Action.Owner != "Enf. João Silva" || def.Action.DueOn != "2024-02-17" {
		t.Errorf("unexpected default action %+v", def.Action)
	}

	saved := items[1]
	if !saved.Saved || saved.Action.Status != types.ActionStatusInProgress || saved.Action.Owner != "Enf. Pedro Costa" {
		t.Errorf("unexpected saved action %+v", saved.Action)
	}
}

func TestActionBoardEmpty(t *testing.T) {
	svc, _ := newTestService()
	items, err := svc.ActionBoard(context.Background(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty board, got %d", len(items))
	}
}

func TestSaveActionValidation(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	incident, err := svc.Create(ctx, validForm())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.SaveAction(ctx, incident.ID, &types.ActionForm{Status: "archived", Owner: "", DueOn: "amanhã"})

	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"status", "owner", "due_on"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected error on %s", field)
		}
	}
	if len(store.actions) != 0 {
		t.Error("nothing should be stored on validation failure")
	}
}

func TestSaveActionUnknownIncident(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SaveAction(context.Background(), 99, &types.ActionForm{
		Status: types.ActionStatusDone,
		Owner:  "Enf. João Silva",
		DueOn:  "2024-02-20",
	})
	if !errors.Is(err, types.ErrIncidentNotFound) {
		t.Errorf("expected ErrIncidentNotFound, got %v", err)
	}
}
