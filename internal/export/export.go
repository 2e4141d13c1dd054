// Package export renders incident reports as downloadable files. Every
// renderer is a pure function of its input.
package export

import (
	"fmt"
	"strconv"
	"time"

	"incidentdesk/internal/analytics"
	"incidentdesk/internal/utils"
	"incidentdesk/pkg/types"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var Formats = []Format{FormatCSV, FormatXLSX, FormatPDF}

func ParseFormat(v string) (Format, error) {
	for _, f := range Formats {
		if string(f) == v {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", v)
}

const fileNamePrefix = "incident_report_"

// FileName names an export after the day it was generated.
func FileName(f Format, now time.Time) string {
	return fileNamePrefix + now.Format("20060102") + "." + string(f)
}

func ContentType(f Format) string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

var columns = []string{
	"id",
	"created_at",
	"occurred_on",
	"responsible",
	"sector",
	"phase",
	"patient_name",
	"patient_age",
	"categories",
	"suggestion",
}

func row(r *types.IncidentReport) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.OccurredOn,
		r.Responsible,
		r.Sector,
		r.Phase,
		r.PatientName,
		strconv.Itoa(r.PatientAge),
		r.CategoryList(),
		utils.PtrString(r.Suggestion),
	}
}

// ReportTitle heads the printable report.
const ReportTitle = "Incident report"

// Build renders records in format f. period describes the selected window and
// only appears in the PDF.
func Build(f Format, records []*types.IncidentReport, period string, now time.Time) ([]byte, error) {
	switch f {
	case FormatCSV:
		return CSV(records)
	case FormatXLSX:
		return XLSX(records)
	case FormatPDF:
		return PDF(PDFSummary{
			Title:       ReportTitle,
			Period:      period,
			GeneratedAt: now,
			Overview:    analytics.Overview(records),
			Sectors:     analytics.SectorCounts(records),
			Phases:      analytics.PhaseCounts(records),
			Categories:  analytics.CategoryLabelCounts(records, 10),
		}, records)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}
