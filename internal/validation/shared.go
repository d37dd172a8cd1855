// Package validation contains input validation for API payloads. Validators
// collect every field problem into a single Error so clients can fix a payload
// in one round trip.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error carries per-field validation failures.
type Error struct {
	Fields map[string]string
}

// Error formats the failures as a deterministic, comma-separated list.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// newError builds an Error, returning nil when no fields failed.
func newError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}
