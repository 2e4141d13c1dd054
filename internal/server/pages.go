package server

import (
	"net/http"

	"incidentdesk/internal/analytics"
	"incidentdesk/pkg/types"
)

// chartSeries is handed to Chart.js as JSON.
type chartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

func seriesFromCounts(counts []analytics.Count, label func(string) string) chartSeries {
	series := chartSeries{Labels: make([]string, 0, len(counts)), Values: make([]int, 0, len(counts))}
	for _, c := range counts {
		name := c.Key
		if label != nil {
			name = label(c.Key)
		}
		series.Labels = append(series.Labels, name)
		series.Values = append(series.Values, c.Count)
	}
	return series
}

func seriesFromMonths(months []analytics.MonthCount) chartSeries {
	series := chartSeries{Labels: make([]string, 0, len(months)), Values: make([]int, 0, len(months))}
	for _, m := range months {
		series.Labels = append(series.Labels, m.Month)
		series.Values = append(series.Values, m.Count)
	}
	return series
}

type dashboardCharts struct {
	Categories chartSeries `json:"categories"`
	Sectors    chartSeries `json:"sectors"`
	Trend      chartSeries `json:"trend"`
}

type DashboardPageData struct {
	types.BasePageData
	Summary analytics.Summary
	Empty   bool
	Charts  dashboardCharts
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := s.incidents.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load incidents for dashboard")
		s.internalServerError(w)
		return
	}

	actions, err := s.incidents.Actions(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load corrective actions for dashboard")
		s.internalServerError(w)
		return
	}

	data := &DashboardPageData{
		BasePageData: types.BasePageData{Title: "Dashboard"},
		Summary:      analytics.Summarize(records, actions, s.now(), s.config.SessionsPerMonth),
		Empty:        len(records) == 0,
		Charts: dashboardCharts{
			Categories: seriesFromCounts(analytics.CategoryGroupCounts(records), s.taxonomy.CategoryName),
			Sectors:    seriesFromCounts(analytics.SectorCounts(records), nil),
			Trend:      seriesFromMonths(analytics.MonthlyTrend(records)),
		},
	}

	s.renderTemplate(w, r, http.StatusOK, "page.dashboard", "/", data)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
