package repository

import (
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// parseTimestamp parses the DATETIME formats SQLite hands back for
// created_at/updated_at columns.
func parseTimestamp(str string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", str); err == nil {
		return t.UTC(), nil
	}
	return ParseTime(str)
}
