package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"incidentdesk/internal/analytics"
	"incidentdesk/internal/export"
	"incidentdesk/pkg/types"

	"github.com/sirupsen/logrus"
)

type reportKind string

const (
	reportGeneral  reportKind = "general"
	reportSector   reportKind = "sector"
	reportCategory reportKind = "category"
	reportPhase    reportKind = "phase"

	// format value that renders the report in the browser
	formatView = "view"

	categoryReportLimit = 10
)

type option struct {
	Value string
	Label string
}

var reportKinds = []option{
	{string(reportGeneral), "General overview"},
	{string(reportSector), "By sector"},
	{string(reportCategory), "By category"},
	{string(reportPhase), "By phase"},
}

var reportFormats = []option{
	{formatView, "View"},
	{string(export.FormatCSV), "CSV"},
	{string(export.FormatXLSX), "Excel"},
	{string(export.FormatPDF), "PDF"},
}

func parseKind(v string) (reportKind, error) {
	if v == "" {
		return reportGeneral, nil
	}
	for _, k := range reportKinds {
		if k.Value == v {
			return reportKind(v), nil
		}
	}
	return "", fmt.Errorf("unknown report kind %q", v)
}

type ReportPageData struct {
	types.BasePageData
	Form    types.ReportForm
	Windows []option
	Kinds   []option
	Formats []option

	Period   string
	Since    string
	Empty    bool
	Overview analytics.General
	Counts   []analytics.Count
	Heading  string
	Chart    chartSeries
	// pie for phases, bar otherwise
	ChartType string
}

func windowOptions() []option {
	out := make([]option, 0, len(analytics.Windows))
	for _, w := range analytics.Windows {
		out = append(out, option{Value: string(w), Label: w.Label()})
	}
	return out
}

func (s *Service) handleReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.now()

	var form types.ReportForm
	if err := decoder.Decode(&form, r.URL.Query()); err != nil {
		http.Error(w, "invalid report parameters", http.StatusBadRequest)
		return
	}

	window, err := analytics.ParseWindow(form.Window)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := parseKind(form.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if form.Format == "" {
		form.Format = formatView
	}

	cutoff, err := analytics.Cutoff(window, now, form.Start)
	if err != nil {
		if errors.Is(err, types.ErrInvalidWindow) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.WithError(err).Error("failed to compute report cutoff")
		s.internalServerError(w)
		return
	}

	all, err := s.incidents.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load incidents for report")
		s.internalServerError(w)
		return
	}

	records := analytics.SelectSince(all, cutoff)
	period := fmt.Sprintf("%s (since %s)", window.Label(), cutoff.Format(types.DateLayout))

	if form.Format != formatView {
		format, err := export.ParseFormat(form.Format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.writeExport(w, r, format, records, period, now)
		return
	}

	form.Window = string(window)
	form.Kind = string(kind)

	data := &ReportPageData{
		BasePageData: types.BasePageData{Title: "Reports"},
		Form:         form,
		Windows:      windowOptions(),
		Kinds:        reportKinds,
		Formats:      reportFormats,
		Period:       period,
		Since:        cutoff.Format(types.DateLayout),
		Empty:        len(records) == 0,
		Overview:     analytics.Overview(records),
		ChartType:    "bar",
	}

	switch kind {
	case reportSector:
		data.Heading = "Incidents by sector"
		data.Counts = analytics.SectorCounts(records)
	case reportCategory:
		data.Heading = fmt.Sprintf("Top %d categories", categoryReportLimit)
		data.Counts = analytics.CategoryLabelCounts(records, categoryReportLimit)
	case reportPhase:
		data.Heading = "Distribution by phase"
		data.Counts = analytics.PhaseCounts(records)
		data.ChartType = "pie"
	}
	data.Chart = seriesFromCounts(data.Counts, nil)

	s.renderTemplate(w, r, http.StatusOK, "page.reports", "/reports", data)
}

func (s *Service) writeExport(w http.ResponseWriter, r *http.Request, format export.Format, records []*types.IncidentReport, period string, now time.Time) {
	body, err := export.Build(format, records, period, now)
	if err != nil {
		s.logger.WithError(err).WithField("format", format).Error("failed to build export")
		s.internalServerError(w)
		return
	}

	fileName := export.FileName(format, now)
	contentType := export.ContentType(format)

	if s.archive != nil {
		key, err := s.archive.Upload(r.Context(), fileName, contentType, body, now)
		if err != nil {
			s.logger.WithError(err).WithField("file", fileName).Error("failed to archive report")
		} else {
			s.logger.WithFields(logrus.Fields{
				"file":     fileName,
				"location": s.archive.ObjectURL(key),
			}).Info("report archived")
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
