package export

import (
	"fmt"

	"incidentdesk/internal/utils"
	"incidentdesk/pkg/types"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Incidents"

// XLSX renders the reports as a single-sheet workbook with a frozen header row.
func XLSX(records []*types.IncidentReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("style xlsx header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		values := []any{
			r.ID,
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			r.OccurredOn,
			r.Responsible,
			r.Sector,
			r.Phase,
			r.PatientName,
			r.PatientAge,
			r.CategoryList(),
			utils.PtrString(r.Suggestion),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write xlsx row for incident %d: %w", r.ID, err)
		}
	}

	err = f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return nil, fmt.Errorf("freeze xlsx header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}

	return buf.Bytes(), nil
}
