package server

import (
	"bytes"
	"net/http"

	"incidentdesk/pkg/types"
)

var navItems = []types.NavItem{
	{Label: "Dashboard", Href: "/"},
	{Label: "New incident", Href: "/incidents/new"},
	{Label: "Incidents", Href: "/incidents"},
	{Label: "Reports", Href: "/reports"},
	{Label: "Corrective actions", Href: "/actions"},
}

func navbar(active string) types.NavbarData {
	items := make([]types.NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = item.Href == active
		items[i] = item
	}
	return types.NavbarData{Items: items}
}

// renderTemplate executes the template into a buffer first so a failing
// template never leaves a half written page behind.
func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName, active string, data any) {
	if setter, ok := data.(types.PageDataSetter); ok {
		setter.SetNavbarData(navbar(active))
		setter.SetFlash(s.popFlash(w, r))
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.WithError(err).WithField("template", templateName).Error("failed to render template")
		s.internalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
