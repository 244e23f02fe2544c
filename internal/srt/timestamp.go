package srt

import (
	"fmt"
	"math"
)

const (
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// FormatTimestamp renders seconds as HH:MM:SS,mmm. A nil value formats as
// zero.
func FormatTimestamp(seconds *float64) string {
	return FormatSeconds(valueOrZero(seconds))
}

// FormatSeconds renders seconds as HH:MM:SS,mmm. Negative input clamps to
// zero and sub-millisecond precision is truncated. The hour field widens past
// two digits for long inputs and saturates at the int64 millisecond limit.
func FormatSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(math.MaxInt64)
	if fitsMillis(seconds) {
		total = int64(seconds * msPerSecond)
	}
	hours := total / msPerHour
	rem := total % msPerHour
	minutes := rem / msPerMinute
	rem %= msPerMinute
	secs := rem / msPerSecond
	millis := rem % msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
