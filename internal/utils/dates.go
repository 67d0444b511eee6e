package utils

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a yyyy-mm-dd string. An empty string maps to the zero
// time, which the domain treats as "unset".
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// FormatDate renders a date as yyyy-mm-dd, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
