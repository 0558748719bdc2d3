package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders milliseconds as MM:SS, switching to HH:MM:SS once
// the duration reaches one hour. Both forms zero-pad every component.
func FormatDuration(ms int64) string {
	totalSeconds := ms / 1000
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatDateTime renders a timestamp as YYYY/MM/DD HH:mm for display names.
func FormatDateTime(t time.Time) string {
	return t.Format("2006/01/02 15:04")
}

// DateKey is the stats_daily key for a day: YYYY-MM-DD in local time.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DayLabel is the short MM/DD label used by trend charts.
func DayLabel(t time.Time) string {
	return t.Format("01/02")
}
