// Package store persists incident reports and corrective actions in PostgreSQL.
package store

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	incidentTableName         = "incidentdesk.incident_reports"
	incidentCategoryTableName = "incidentdesk.incident_report_categories"
	actionTableName           = "incidentdesk.corrective_actions"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// buildUpdateClause creates the SET clause for ON CONFLICT DO UPDATE
// e.g., "owner = EXCLUDED.owner, status = EXCLUDED.status, ..."
func buildUpdateClause(fields map[string]any) string {
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s = EXCLUDED.%s", field, field))
	}
	return strings.Join(parts, ", ")
}
