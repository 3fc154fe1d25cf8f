package session

import (
	"fmt"
	"time"
)

// minSessionHours avoids division by zero when a summary is computed
// moments after the session starts (~1 minute).
const minSessionHours = 0.017

// BuildSummary derives a session's financial summary from already-queried
// totals. Pure and safe to recompute any number of times. Rental revenue is
// recognized by end_time: a rental counts in the session during which it
// closed, regardless of when it started.
func BuildSummary(s *DailySession, observed time.Time,
	salesRevenue float64, salesCount, productsSold int,
	rentalsRevenue float64, rentalsCompleted int) *Summary {

	sum := &Summary{
		SessionID:           s.ID,
		SessionName:         s.Name,
		StartTime:           s.StartTime,
		ObservedAt:          observed,
		TotalSalesRevenue:   salesRevenue,
		TotalRentalsRevenue: rentalsRevenue,
		TotalRevenue:        salesRevenue + rentalsRevenue,
		SalesCount:          salesCount,
		ProductsSold:        productsSold,
		RentalsCompleted:    rentalsCompleted,
		Duration:            formatDuration(s.StartTime, observed),
	}

	if salesCount > 0 {
		sum.AverageSale = salesRevenue / float64(salesCount)
	}

	hours := observed.Sub(s.StartTime).Hours()
	if hours < minSessionHours {
		hours = minSessionHours
	}
	sum.TotalHours = hours
	sum.RevenuePerHour = sum.TotalRevenue / hours

	return sum
}

// formatDuration renders the window as "{h}h {m}m", floored to "1m" for
// sub-minute windows.
func formatDuration(start, observed time.Time) string {
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
