package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"incidentdesk/internal/filter"
	"incidentdesk/internal/taxonomy"
	"incidentdesk/pkg/types"
)

type IncidentFormPageData struct {
	types.BasePageData
	Options     types.FormOptions
	Categories  []taxonomy.Category
	Form        *types.IncidentForm
	FieldErrors map[string]string
}

type IncidentListPageData struct {
	types.BasePageData
	Options   types.FormOptions
	Filters   types.ListFilterForm
	AllSector string
	Incidents []*types.IncidentReport
	Shown     int
	Total     int
}

type IncidentDetailPageData struct {
	types.BasePageData
	Incident *types.IncidentReport
}

func (s *Service) formOptions() types.FormOptions {
	return types.FormOptions{
		Sectors:     s.taxonomy.Sectors(),
		Phases:      s.taxonomy.Phases(),
		Responsible: s.taxonomy.Responsible(),
		Statuses:    types.ActionStatuses,
	}
}

func (s *Service) incidentFormPage(form *types.IncidentForm, fieldErrors map[string]string) *IncidentFormPageData {
	return &IncidentFormPageData{
		BasePageData: types.BasePageData{Title: "New incident"},
		Options:      s.formOptions(),
		Categories:   s.taxonomy.Categories(),
		Form:         form,
		FieldErrors:  fieldErrors,
	}
}

func (s *Service) handleGetNewIncident(w http.ResponseWriter, r *http.Request) {
	form := &types.IncidentForm{OccurredOn: s.now().Format(types.DateLayout)}
	s.renderTemplate(w, r, http.StatusOK, "page.incident-new", "/incidents/new", s.incidentFormPage(form, nil))
}

func (s *Service) handlePostIncident(w http.ResponseWriter, r *http.Request) {

	err := r.ParseForm()
	if err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var form = new(types.IncidentForm)
	err = decoder.Decode(form, r.PostForm)
	if err != nil {
		// the decoder keeps every field it could read, only the age can fail
		s.logger.WithError(err).Debug("failed to decode incident form")

		verr := new(types.ValidationError)
		verr.Add("patient_age", "Enter the age as a whole number.")
		s.renderTemplate(w, r, http.StatusUnprocessableEntity, "page.incident-new", "/incidents/new", s.incidentFormPage(form, verr.Fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	incident, err := s.incidents.Create(ctx, form)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.renderTemplate(w, r, http.StatusUnprocessableEntity, "page.incident-new", "/incidents/new", s.incidentFormPage(form, verr.Fields))
			return
		}

		s.logger.WithError(err).Error("failed to create incident")
		s.internalServerError(w)
		return
	}

	s.logger.WithField("incident_id", incident.ID).Info("incident registered")

	s.redirectWithNotice(w, r, "/incidents/new", fmt.Sprintf("Incident #%d registered.", incident.ID))
}

func (s *Service) handleListIncidents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filters types.ListFilterForm
	if err := decoder.Decode(&filters, r.URL.Query()); err != nil {
		http.Error(w, "invalid filter", http.StatusBadRequest)
		return
	}

	for _, v := range []string{filters.Start, filters.End} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(types.DateLayout, v); err != nil {
			http.Error(w, fmt.Sprintf("invalid date %q, use YYYY-MM-DD", v), http.StatusBadRequest)
			return
		}
	}

	records, err := s.incidents.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list incidents")
		s.internalServerError(w)
		return
	}

	filtered := filter.Apply(records, filter.Criteria{
		Sector:  filters.Sector,
		Patient: filters.Patient,
		Start:   filters.Start,
		End:     filters.End,
	})

	if filters.Sector == "" {
		filters.Sector = filter.AllSectors
	}

	data := &IncidentListPageData{
		BasePageData: types.BasePageData{Title: "Incidents"},
		Options:      s.formOptions(),
		Filters:      filters,
		AllSector:    filter.AllSectors,
		Incidents:    filtered,
		Shown:        len(filtered),
		Total:        len(records),
	}

	s.renderTemplate(w, r, http.StatusOK, "page.incident-list", "/incidents", data)
}

func (s *Service) handleIncidentDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	incident, err := s.incidents.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrIncidentNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("incident_id", id).Error("failed to load incident")
		s.internalServerError(w)
		return
	}

	data := &IncidentDetailPageData{
		BasePageData: types.BasePageData{Title: fmt.Sprintf("Incident #%d", incident.ID)},
		Incident:     incident,
	}

	s.renderTemplate(w, r, http.StatusOK, "page.incident-detail", "/incidents", data)
}
