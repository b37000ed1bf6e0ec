package domain

import (
	"strings"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseISO reads the ISO-8601 shapes produced by browsers and the backend.
// Zone-less values are taken as UTC.
func ParseISO(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)

	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// CoerceDate normalizes a due date from any of its representations.
// Precedence: typed value, then parseable text, then absent.
func CoerceDate(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}

		return &v
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}

		t := *v
		return &t
	case string:
		if t, ok := ParseISO(v); ok {
			return &t
		}
	case []string:
		if len(v) > 0 {
			return CoerceDate(v[0])
		}
	}

	return nil
}

// FormatISO renders t the way a browser's Date.toISOString does.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
