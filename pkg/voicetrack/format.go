// Package voicetrack accumulates how long members stay in a guild's watched
// voice channel and formats the totals for display.
package voicetrack

import "fmt"

// FormatDuration renders a second count as a Korean duration string.
// Components are dropped from the left while they are zero, but the seconds
// part is always present with two decimals: "5.50초", "1분 5.00초",
// "1시간 2분 5.00초".
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%.2f초", seconds)
	}

	minutes := int(seconds) / 60
	secs := seconds - float64(minutes*60)
	if minutes < 60 {
		return fmt.Sprintf("%d분 %.2f초", minutes, secs)
	}

	hours := minutes / 60
	minutes -= hours * 60
	return fmt.Sprintf("%d시간 %d분 %.2f초", hours, minutes, secs)
}
