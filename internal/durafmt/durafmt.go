// Package durafmt formats playback timestamps for the grid cells.
package durafmt

import "fmt"

// Seconds formats a position given in seconds as MM:SS, or HH:MM:SS once
// the hour is reached. Negative or unknown positions format as zero.
func Seconds(secs float64) string {
	if secs < 0 {
		secs = 0
	}

	total := int(secs)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}
