package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecondsToHours(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "zero", input: 0, expected: 0},
		{name: "exact hours", input: 7200, expected: 2},
		{name: "rounds to two decimals", input: 125, expected: 0.03},
		{name: "eight and a half hours", input: 30600, expected: 8.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SecondsToHours(tt.input))
		})
	}
}

func TestFormatMinutesSeconds(t *testing.T) {
	assert.Equal(t, "2m 5s", FormatMinutesSeconds(125))
	assert.Equal(t, "0m 59s", FormatMinutesSeconds(59))
	assert.Equal(t, "60m 0s", FormatMinutesSeconds(3600))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.35", FormatPercent(12.345))
	assert.Equal(t, "100.00", FormatPercent(100))
	assert.Equal(t, "0.00", FormatPercent(0))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "seconds only", input: 42 * time.Second, expected: "42s"},
		{name: "minutes", input: 5 * time.Minute, expected: "5m"},
		{name: "hours and minutes", input: 2*time.Hour + 30*time.Minute, expected: "2h 30m"},
		{name: "negative clamps to zero", input: -time.Minute, expected: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input))
		})
	}
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, 4, GetDisplayWidth(PadRight("abcdefgh", 4)))
	assert.Equal(t, " ab  ", CenterText("ab", 5))
	assert.Equal(t, "", PadRight("ab", 0))
}
