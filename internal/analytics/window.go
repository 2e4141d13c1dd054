package analytics

import (
	"fmt"
	"time"

	"incidentdesk/pkg/types"
)

type Window string

const (
	WindowLast7  Window = "last7"
	WindowLast30 Window = "last30"
	WindowLast90 Window = "last90"
	WindowMonth  Window = "month"
	WindowCustom Window = "custom"
)

var Windows = []Window{WindowLast7, WindowLast30, WindowLast90, WindowMonth, WindowCustom}

func (w Window) Label() string {
	switch w {
	case WindowLast7:
		return "Last 7 days"
	case WindowLast30:
		return "Last 30 days"
	case WindowLast90:
		return "Last 90 days"
	case WindowMonth:
		return "This month"
	case WindowCustom:
		return "Custom"
	}
	return string(w)
}

// ParseWindow maps a window name to a Window; an empty name means last 30 days.
func ParseWindow(v string) (Window, error) {
	if v == "" {
		return WindowLast30, nil
	}

	for _, w := range Windows {
		if string(w) == v {
			return w, nil
		}
	}

	return "", fmt.Errorf("%w: unknown window %q", types.ErrInvalidWindow, v)
}

// Cutoff returns the first day included by the window, at midnight in now's
// location. start is only read for WindowCustom and must be YYYY-MM-DD.
func Cutoff(w Window, now time.Time, start string) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch w {
	case WindowLast7:
		return today.AddDate(0, 0, -7), nil
	case WindowLast30:
		return today.AddDate(0, 0, -30), nil
	case WindowLast90:
		return today.AddDate(0, 0, -90), nil
	case WindowMonth:
		return MonthStart(now), nil
	case WindowCustom:
		if start == "" {
			return time.Time{}, fmt.Errorf("%w: custom window needs a start date", types.ErrInvalidWindow)
		}
		t, err := time.ParseInLocation(types.DateLayout, start, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: start date %q: %v", types.ErrInvalidWindow, start, err)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: unknown window %q", types.ErrInvalidWindow, w)
}

// SelectSince keeps the reports that occurred on or after cutoff's date.
func SelectSince(records []*types.IncidentReport, cutoff time.Time) []*types.IncidentReport {
	bound := cutoff.Format(types.DateLayout)

	out := make([]*types.IncidentReport, 0, len(records))
	for _, r := range records {
		if r.OccurredOn >= bound {
			out = append(out, r)
		}
	}
	return out
}

func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
