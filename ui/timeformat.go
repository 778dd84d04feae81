package ui

import (
	"fmt"
	"time"
)

// FormatRelativeTime formats a time as a human-readable relative string.
// Examples: "just now", "2m ago", "3h ago", "5d ago", "2mo ago", "1y ago"
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	case diff < 30*24*time.Hour:
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / (24 * 30))
		return fmt.Sprintf("%dmo ago", months)
	default:
		years := int(diff.Hours() / (24 * 365))
		return fmt.Sprintf("%dy ago", years)
	}
}

// FormatLastSeen formats a worker's last report time, handling the zero value
// the pool returns for workers that never connected.
func FormatLastSeen(ts int64, now time.Time) string {
	if ts <= 0 {
		return "never"
	}
	return FormatRelativeTime(time.Unix(ts, 0), now)
}
