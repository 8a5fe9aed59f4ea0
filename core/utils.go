package core

import (
	"regexp"
	"strings"
)

var spaceRegex = regexp.MustCompile(`\s+`)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// GradeKey normalizes a grade name ("4A", " grade 4a ") to a stable store key:
// lowercased, inner whitespace collapsed.
func GradeKey(grade string) string {
	return spaceRegex.ReplaceAllString(CleanString(grade, true), " ")
}

// DayKey normalizes a weekday name to its stored form ("monday" -> "Monday").
func DayKey(day string) string {
	day = strings.ToLower(strings.TrimSpace(day))
	if day == "" {
		return ""
	}
	return strings.ToUpper(day[:1]) + day[1:]
}
