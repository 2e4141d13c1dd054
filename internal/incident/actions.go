package incident

import (
	"context"
	"fmt"
	"strings"
	"time"

	"incidentdesk/pkg/types"
)

// ActionItem pairs a report that carries a suggestion with its corrective
// action. Saved is false when the action shown is the unsaved default.
type ActionItem struct {
	Incident *types.IncidentReport
	Action   *types.CorrectiveAction
	Saved    bool
}

// ActionBoard lists every report with a suggestion, oldest first, together
// with its saved action or a pending default due a week from now.
func (s *Service) ActionBoard(ctx context.Context, now time.Time) ([]ActionItem, error) {

	incidents, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	actions, err := s.Actions(ctx)
	if err != nil {
		return nil, err
	}

	byIncident := make(map[int64]*types.CorrectiveAction, len(actions))
	for _, a := range actions {
		byIncident[a.IncidentID] = a
	}

	items := make([]ActionItem, 0)
	for _, incident := range incidents {
		if !incident.HasSuggestion() {
			continue
		}

		if action, ok := byIncident[incident.ID]; ok {
			items = append(items, ActionItem{Incident: incident, Action: action, Saved: true})
			continue
		}

		items = append(items, ActionItem{Incident: incident, Action: s.defaultAction(incident.ID, now)})
	}

	return items, nil
}

func (s *Service) defaultAction(incidentID int64, now time.Time) *types.CorrectiveAction {
	owner := ""
	if roster := s.taxonomy.Responsible(); len(roster) > 0 {
		owner = roster[0]
	}

	return &types.CorrectiveAction{
		IncidentID: incidentID,
		Status:     types.ActionStatusPending,
		Owner:      owner,
		DueOn:      now.AddDate(0, 0, defaultActionDueDays).Format(types.DateLayout),
	}
}

// SaveAction validates the form and upserts the action of an existing report.
func (s *Service) SaveAction(ctx context.Context, incidentID int64, form *types.ActionForm) (*types.CorrectiveAction, error) {

	verr := new(types.ValidationError)

	action := &types.CorrectiveAction{
		IncidentID: incidentID,
		Status:     types.ActionStatus(strings.TrimSpace(string(form.Status))),
		Owner:      strings.TrimSpace(form.Owner),
		DueOn:      strings.TrimSpace(form.DueOn),
	}

	if !action.Status.Valid() {
		verr.Add("status", "Choose a valid status.")
	}
	if action.Owner == "" {
		verr.Add("owner", "This field is required.")
	}
	if _, err := time.Parse(types.DateLayout, action.DueOn); err != nil {
		verr.Add("due_on", "Use the YYYY-MM-DD format.")
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, incidentID); err != nil {
		return nil, err
	}

	if err := s.actions.UpsertAction(ctx, action); err != nil {
		return nil, fmt.Errorf("store corrective action: %w", err)
	}

	return action, nil
}
