package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"incidentdesk/pkg/types"
)

// CSV writes a header row followed by one row per report.
func CSV(records []*types.IncidentReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return nil, fmt.Errorf("write csv row for incident %d: %w", r.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
