// Package common contains small utilities shared across the project:
// pluralization for chat messages, text truncation, time formatting.
package common

import (
	"fmt"
	"time"
)

// Pluralize returns singular for n == 1 or n == -1, plural otherwise.
//
// Examples:
//
//	Pluralize(1, "point", "points")  → "point"
//	Pluralize(5, "point", "points")  → "points"
//	Pluralize(0, "task", "tasks")    → "tasks"
func Pluralize(n int64, singular, plural string) string {
	if n == 1 || n == -1 {
		return singular
	}
	return plural
}

// FormatPoints formats a point total into a readable string.
// Example: FormatPoints(3) → "3 points"
func FormatPoints(n int64) string {
	return fmt.Sprintf("%d %s", n, Pluralize(n, "point", "points"))
}

// Truncate cuts s down to max runes, appending "..." when something was cut.
// Used to keep task titles from flooding acknowledgement messages.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// FormatDateTime formats a timestamp as "2006-01-02 15:04:05" in the given
// location. Used for the export artifact header and message lines.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}
