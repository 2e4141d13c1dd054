package types

import "time"

type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusDone       ActionStatus = "done"
)

var ActionStatuses = []ActionStatus{
	ActionStatusPending,
	ActionStatusInProgress,
	ActionStatusDone,
}

func (s ActionStatus) Valid() bool {
	for _, v := range ActionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s ActionStatus) Label() string {
	switch s {
	case ActionStatusPending:
		return "Pending"
	case ActionStatusInProgress:
		return "In progress"
	case ActionStatusDone:
		return "Done"
	}
	return string(s)
}

// CorrectiveAction tracks the remediation of one report's suggestion.
type CorrectiveAction struct {
	ID         string       `db:"id" json:"id"`
	IncidentID int64        `db:"incident_id" json:"incidentId"`
	Status     ActionStatus `db:"status" json:"status"`
	Owner      string       `db:"owner" json:"owner"`
	DueOn      string       `db:"due_on" json:"dueOn"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updatedAt"`
}
