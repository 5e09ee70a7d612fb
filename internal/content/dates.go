package content

import (
	"strings"
	"time"
)

// dateLayouts are the accepted spellings of a front-matter date, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// ParseDate interprets a front-matter date. It returns the zero time when s
// matches none of the accepted layouts.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders a post date for display ("January 2, 2006"). Dates that
// cannot be parsed are shown as written.
func FormatDate(s string) string {
	t := ParseDate(s)
	if t.IsZero() {
		return s
	}
	return t.Format("January 2, 2006")
}
