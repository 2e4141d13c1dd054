// Package incident validates intake submissions and corrective actions and
// hands them to the configured store.
package incident

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"incidentdesk/internal/taxonomy"
	"incidentdesk/internal/utils"
	"incidentdesk/pkg/types"
)

const (
	MaxPatientAge = 120

	// default deadline offered for a new corrective action
	defaultActionDueDays = 7
)

type IncidentStore interface {
	CreateIncident(ctx context.Context, incident *types.IncidentReport) error
	Incidents(ctx context.Context) ([]*types.IncidentReport, error)
	Incident(ctx context.Context, id int64) (*types.IncidentReport, error)
}

type ActionStore interface {
	UpsertAction(ctx context.Context, action *types.CorrectiveAction) error
	Actions(ctx context.Context) ([]*types.CorrectiveAction, error)
}

type Service struct {
	incidents IncidentStore
	actions   ActionStore
	taxonomy  *taxonomy.Taxonomy
}

func NewService(incidents IncidentStore, actions ActionStore, tax *taxonomy.Taxonomy) *Service {
	return &Service{incidents: incidents, actions: actions, taxonomy: tax}
}

func (s *Service) Taxonomy() *taxonomy.Taxonomy {
	return s.taxonomy
}

// Create validates the form and stores a new report. A *types.ValidationError
// is returned, and nothing is stored, when required data is missing.
func (s *Service) Create(ctx context.Context, form *types.IncidentForm) (*types.IncidentReport, error) {

	incident, err := buildIncident(form)
	if err != nil {
		return nil, err
	}

	if err := s.incidents.CreateIncident(ctx, incident); err != nil {
		return nil, fmt.Errorf("store incident: %w", err)
	}

	return incident, nil
}

func buildIncident(form *types.IncidentForm) (*types.IncidentReport, error) {
	verr := new(types.ValidationError)

	incident := &types.IncidentReport{
		OccurredOn:  strings.TrimSpace(form.OccurredOn),
		Responsible: strings.TrimSpace(form.Responsible),
		Sector:      strings.TrimSpace(form.Sector),
		Phase:       strings.TrimSpace(form.Phase),
		PatientName: strings.TrimSpace(form.PatientName),
		PatientAge:  form.PatientAge,
		Suggestion:  utils.NilIfBlank(form.Suggestion),
		Categories:  make([]string, 0, len(form.Categories)),
	}

	seen := make(map[string]bool)
	for _, label := range form.Categories {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		incident.Categories = append(incident.Categories, label)
	}

	required := []struct {
		field, value string
	}{
		{"patient_name", incident.PatientName},
		{"sector", incident.Sector},
		{"responsible", incident.Responsible},
		{"phase", incident.Phase},
		{"occurred_on", incident.OccurredOn},
	}
	for _, r := range required {
		if r.value == "" {
			verr.Add(r.field, "This field is required.")
		}
	}

	if incident.OccurredOn != "" {
		if _, err := time.Parse(types.DateLayout, incident.OccurredOn); err != nil {
			verr.Add("occurred_on", "Use the YYYY-MM-DD format.")
		}
	}

	if incident.PatientAge < 0 || incident.PatientAge > MaxPatientAge {
		verr.Add("patient_age", fmt.Sprintf("Age must be between 0 and %d.", MaxPatientAge))
	}

	if len(incident.Categories) == 0 {
		verr.Add("categories", "Select at least one incident category.")
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return incident, nil
}

func (s *Service) List(ctx context.Context) ([]*types.IncidentReport, error) {
	incidents, err := s.incidents.Incidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	return incidents, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*types.IncidentReport, error) {
	incident, err := s.incidents.Incident(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrIncidentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get incident %d: %w", id, err)
	}
	return incident, nil
}

func (s *Service) Actions(ctx context.Context) ([]*types.CorrectiveAction, error) {
	actions, err := s.actions.Actions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corrective actions: %w", err)
	}
	return actions, nil
}
