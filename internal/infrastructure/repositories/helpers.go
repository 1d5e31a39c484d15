package repositories

import (
	"encoding/json"
	"strings"
)

// marshalJSON serializes a details/metadata map for a jsonb column.
// Empty maps are stored as "{}" so the column stays valid JSON.
func marshalJSON(m map[string]interface{}) string {
	if len(m) == 0 {
		return "{}"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// unmarshalJSON deserializes a jsonb column back into a map.
func unmarshalJSON(s string) map[string]interface{} {
	if s == "" {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// Matched textually so it covers both the postgres driver ("duplicate key")
// and sqlite in tests ("UNIQUE constraint failed") without driver-specific
// error translation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
