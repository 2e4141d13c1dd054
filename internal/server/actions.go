package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"incidentdesk/internal/incident"
	"incidentdesk/pkg/types"
)

type ActionsPageData struct {
	types.BasePageData
	Options types.FormOptions
	Items   []incident.ActionItem
}

func (s *Service) handleActions(w http.ResponseWriter, r *http.Request) {
	items, err := s.incidents.ActionBoard(r.Context(), s.now())
	if err != nil {
		s.logger.WithError(err).Error("failed to load corrective actions")
		s.internalServerError(w)
		return
	}

	data := &ActionsPageData{
		BasePageData: types.BasePageData{Title: "Corrective actions"},
		Options:      s.formOptions(),
		Items:        items,
	}

	s.renderTemplate(w, r, http.StatusOK, "page.actions", "/actions", data)
}

func (s *Service) handlePostAction(w http.ResponseWriter, r *http.Request) {

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = r.ParseForm()
	if err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var form = new(types.ActionForm)
	err = decoder.Decode(form, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = s.incidents.SaveAction(ctx, id, form)
	if err != nil {
		if errors.Is(err, types.ErrIncidentNotFound) {
			http.NotFound(w, r)
			return
		}

		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.redirectWithError(w, r, "/actions", fmt.Sprintf("Action for incident #%d not saved: %s", id, verr.Error()))
			return
		}

		s.logger.WithError(err).WithField("incident_id", id).Error("failed to save corrective action")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/actions", fmt.Sprintf("Action for incident #%d saved.", id))
}
