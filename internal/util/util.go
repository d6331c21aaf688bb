package util

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatAge renders an ISO-8601 timestamp relative to now, e.g. "3 days ago".
// Unparseable input is returned unchanged.
func FormatAge(iso string, now time.Time) string {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return iso
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// IsProjectID checks if a string looks like a project ID rather than a name
func IsProjectID(str string) bool {
	// Simple check; IDs are "prj_" followed by an alphanumeric key
	rest, ok := strings.CutPrefix(str, "prj_")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// Truncate shortens s to at most width runes, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
