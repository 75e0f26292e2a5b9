package domain

import "fmt"

// FormatTime renders a seconds offset the way players display it:
// "0:05", "1:05", "1:01:05". Fractional seconds are floored and
// negative inputs clamp to zero.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hrs := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	if hrs > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hrs, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
