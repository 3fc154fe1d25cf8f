package rental

import (
	"fmt"
	"time"
)

// ElapsedHours returns the raw elapsed time between start and the
// observation instant in fractional hours. It can be negative when the
// observation precedes the start (clock skew); callers decide how to treat
// that.
func ElapsedHours(start, observed time.Time) float64 {
	return observed.Sub(start).Hours()
}

// Charge computes the rental amount for a table rate. The returned hours
// are raw (possibly negative, so clock skew stays visible), while the
// amount is floored at zero: a rental never bills a negative total. No
// rounding is applied; two-decimal formatting happens at presentation time.
func Charge(start, observed time.Time, hourlyRate float64) (hours, amount float64) {
	hours = ElapsedHours(start, observed)
	amount = hours * hourlyRate
	if amount < 0 {
		amount = 0
	}
	return hours, amount
}

// FormatDuration renders the elapsed time as "{h}h {m}m". A rental shorter
// than a minute displays as "1m" so active rentals never show an empty
// duration.
func FormatDuration(start, observed time.Time) string {
	elapsed := observed.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	h := int(elapsed.Hours())
	m := int(elapsed.Minutes()) % 60
	if h == 0 && m == 0 {
		return "1m"
	}
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
