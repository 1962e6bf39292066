package repository

import (
	"database/sql"
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the
// given layout. Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for
// SQLite storage: SQL NULL for nil, otherwise the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableFloatToValue converts a *float64 to a value suitable for SQLite
// storage.
func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// assigneesToJSON encodes an assignee set for the TEXT column. A nil slice
// stores as the empty set.
func assigneesToJSON(assignees []string) string {
	if len(assignees) == 0 {
		return "[]"
	}
	b, err := json.Marshal(assignees)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// assigneesFromJSON decodes the TEXT column back into a slice.
func assigneesFromJSON(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
