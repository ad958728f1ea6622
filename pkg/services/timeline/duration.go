package timeline

import (
	"fmt"
	"math"
)

const (
	secondsPerMinute      = 60
	secondsPerHour        = 3600
	hoursPerDay           = 24
	millisecondsPerSecond = 1000
)

// FormatDuration renders seconds as H:MM:SS.mmm.
// Whole seconds and milliseconds are truncated. The hour field wraps every 24 hours,
// so durations of a day or more lose their day component.
// Negative and non-finite values render as zero.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	whole := math.Trunc(seconds)
	millis := int64((seconds - whole) * millisecondsPerSecond)

	total := int64(math.Mod(whole, hoursPerDay*secondsPerHour))
	hours := total / secondsPerHour
	total %= secondsPerHour
	minutes := total / secondsPerMinute
	secs := total % secondsPerMinute

	return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, secs, millis)
}
