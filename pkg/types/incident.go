package types

import (
	"strings"
	"time"
)

// DateLayout is the fixed-width ISO layout used for occurrence and due dates.
// String comparison of two values in this layout matches chronological order.
const DateLayout = "2006-01-02"

// CategorySeparator joins category labels in the display and export format.
const CategorySeparator = ","

type IncidentReport struct {
	ID          int64     `db:"id" json:"id"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	OccurredOn  string    `db:"occurred_on" json:"occurredOn"`
	Responsible string    `db:"responsible" json:"responsible"`
	Sector      string    `db:"sector" json:"sector"`
	Phase       string    `db:"phase" json:"phase"`
	PatientName string    `db:"patient_name" json:"patientName"`
	PatientAge  int       `db:"patient_age" json:"patientAge"`
	Suggestion  *string   `db:"suggestion" json:"suggestion,omitempty"`

	Categories []string `db:"-" json:"categories"`
}

// HasSuggestion reports whether the report carries a non-blank improvement suggestion.
func (r *IncidentReport) HasSuggestion() bool {
	return r.Suggestion != nil && strings.TrimSpace(*r.Suggestion) != ""
}

// CategoryList renders the selected labels in the delimited display format.
func (r *IncidentReport) CategoryList() string {
	return JoinCategories(r.Categories)
}

// IncidentCategory is one row of the report -> label relation.
type IncidentCategory struct {
	IncidentID int64  `db:"incident_id"`
	Position   int    `db:"position"`
	Label      string `db:"label"`
}

func JoinCategories(labels []string) string {
	return strings.Join(labels, CategorySeparator)
}
