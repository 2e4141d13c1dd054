package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"incidentdesk/internal/analytics"
	"incidentdesk/pkg/types"

	"github.com/go-pdf/fpdf"
)

// PDFSummary is the printable counterpart of the general report.
type PDFSummary struct {
	Title       string
	Period      string
	GeneratedAt time.Time
	Overview    analytics.General
	Sectors     []analytics.Count
	Phases      []analytics.Count
	Categories  []analytics.Count
}

var pdfTable = []struct {
	title string
	width float64
}{
	{"Date", 22},
	{"Patient", 45},
	{"Sector", 25},
	{"Phase", 35},
	{"Categories", 63},
}

// PDF renders the summary counts followed by a table of the reports.
func PDF(summary PDFSummary, records []*types.IncidentReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr(summary.Title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(summary.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Period: %s", summary.Period)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", summary.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total incidents: %d", summary.Overview.Total), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Most affected sector: %s", summary.Overview.TopSector)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Most critical phase: %s", summary.Overview.TopPhase)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	sections := []struct {
		title  string
		counts []analytics.Count
	}{
		{"By sector", summary.Sectors},
		{"By phase", summary.Phases},
		{"By category", summary.Categories},
	}
	for _, s := range sections {
		if len(s.counts) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, s.title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, c := range s.counts {
			pdf.CellFormat(80, 6, tr(c.Key), "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, strconv.Itoa(c.Count), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(records) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 7, "No incidents in the selected period.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 236, 241)
		for _, col := range pdfTable {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 8)
		for _, r := range records {
			values := []string{r.OccurredOn, r.PatientName, r.Sector, r.Phase, r.CategoryList()}
			for i, col := range pdfTable {
				pdf.CellFormat(col.width, 6, truncate(tr(values[i]), col.width), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// truncate keeps table cells on one line, about one character per mm at 8pt.
func truncate(s string, width float64) string {
	limit := int(width)
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
