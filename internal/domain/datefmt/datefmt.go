// Package datefmt normalizes date strings for HTML date inputs.
package datefmt

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// InputLayout is the value format of <input type="date">.
const InputLayout = "2006-01-02"

var inputPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ForInput converts s into a YYYY-MM-DD string suitable for a date input.
//
// Empty input yields "". Strings already shaped like YYYY-MM-DD are returned
// unchanged. Timestamps are parsed, moved to UTC and cut to their date part.
// Anything else goes through a generic parser; unparseable input yields "".
func ForInput(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "T") {
		return format(parseTimestamp(s))
	}
	if inputPattern.MatchString(s) {
		return s
	}
	return format(parseAny(s))
}

func parseTimestamp(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	return parseAny(s)
}

// parseAny reads zone-less values as UTC.
func parseAny(s string) (time.Time, bool) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// format drops dates before year 1; a date input cannot hold them.
func format(t time.Time, ok bool) string {
	if !ok || t.UTC().Year() < 1 {
		return ""
	}
	return t.UTC().Format(InputLayout)
}
