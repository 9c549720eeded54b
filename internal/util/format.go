package util

import (
	"fmt"
	"math"
	"time"
)

// RoundTo rounds v to the given number of decimal places
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// SecondsToHours converts seconds to hours rounded to two decimals
func SecondsToHours(seconds float64) float64 {
	return RoundTo(seconds/3600, 2)
}

// FormatMinutesSeconds renders whole seconds as "<M>m <S>s"
func FormatMinutesSeconds(seconds int64) string {
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// FormatPercent renders a percentage with two decimals and no sign
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f", pct)
}

func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// FormatHours renders an hour count with two decimals
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}
