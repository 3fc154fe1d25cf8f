package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCharge(t *testing.T) {
	start := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	hours, amount := Charge(start, start.Add(90*time.Minute), 10.0)
	assert.InDelta(t, 1.5, hours, 1e-9)
	assert.InDelta(t, 15.0, amount, 1e-9)

	hours, amount = Charge(start, start.Add(45*time.Minute), 8.0)
	assert.InDelta(t, 0.75, hours, 1e-9)
	assert.InDelta(t, 6.0, amount, 1e-9)
}

func TestChargeMonotonic(t *testing.T) {
	start := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	prev := 0.0
	for m := 1; m <= 240; m += 7 {
		_, amount := Charge(start, start.Add(time.Duration(m)*time.Minute), 12.5)
		assert.GreaterOrEqual(t, amount, prev, "charge must never decrease as time passes")
		prev = amount
	}
}

func TestChargeClockSkew(t *testing.T) {
	start := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	// Observation before start: hours stay negative so the skew is visible,
	// but the billed amount never goes below zero.
	hours, amount := Charge(start, start.Add(-10*time.Minute), 10.0)
	assert.Negative(t, hours)
	assert.Zero(t, amount)
}

func TestFormatDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "1m"},
		{30 * time.Second, "1m"},
		{5 * time.Minute, "5m"},
		{59 * time.Minute, "59m"},
		{60 * time.Minute, "1h 0m"},
		{90 * time.Minute, "1h 30m"},
		{150 * time.Minute, "2h 30m"},
		{-5 * time.Minute, "1m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(start, start.Add(tc.elapsed)), "elapsed %s", tc.elapsed)
	}
}
