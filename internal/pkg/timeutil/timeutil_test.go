package timeutil

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{59_000, "00:59"},
		{60_000, "01:00"},
		{90_500, "01:30"},
		{3_599_000, "59:59"},
		{3_600_000, "01:00:00"},
		{3_661_000, "01:01:01"},
		{-5_000, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestDateFormats(t *testing.T) {
	ts := time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)
	if got := FormatDateTime(ts); got != "2025/03/07 09:05" {
		t.Errorf("FormatDateTime = %q", got)
	}
	if got := DateKey(ts); got != "2025-03-07" {
		t.Errorf("DateKey = %q", got)
	}
	if got := DayLabel(ts); got != "03/07" {
		t.Errorf("DayLabel = %q", got)
	}
}
