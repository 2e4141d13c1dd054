package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrInvalidWindow    = errors.New("invalid report window")
)

// ValidationError carries per-field messages for a rejected form submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e when it holds at least one field error.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
