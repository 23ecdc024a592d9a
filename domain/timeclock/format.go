package timeclock

import "fmt"

// FormatDuration renders a minute count as "{hours}h{minutes:02d}".
// 90 -> "1h30", 0 -> "0h00". Hours are unpadded; minutes always two digits.
// The React clients parse this shape, so it is a compatibility contract.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}
