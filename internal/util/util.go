// Package util holds small formatting helpers for terminal output.
package util

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
// Zero and negative durations render as "N/A".
func FormatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "N/A"
	}

	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}

// Ellipsis shortens s to at most maxRunes runes, marking the cut with "...".
func Ellipsis(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	if maxRunes <= 3 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	runes := []rune(s)

	return string(runes[:maxRunes-3]) + "..."
}
