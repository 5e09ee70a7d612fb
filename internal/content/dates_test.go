package content

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024/01/15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"January 15, 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Jan 15, 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"  2024-01-15  ", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"last tuesday", time.Time{}},
	}
	for _, tt := range tests {
		if got := ParseDate(tt.input); !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-03-05"); got != "March 5, 2024" {
		t.Errorf("FormatDate = %q, want %q", got, "March 5, 2024")
	}
	if got := FormatDate("spring 2024"); got != "spring 2024" {
		t.Errorf("FormatDate = %q, want raw string", got)
	}
}
