package session

import (
	"time"

	"github.com/google/uuid"
)

// DailySession is a named work-shift window. At most one session per
// tenant is active at any moment; the partial unique index on
// daily_sessions backs the service-level guard.
type DailySession struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	IsActive  bool       `json:"is_active"`
	OpenedBy  *uuid.UUID `json:"opened_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// StockSnapshot captures a product's stock level at session start. Rows
// are written once and never mutated; they are the reconciliation baseline.
type StockSnapshot struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	ProductID    uuid.UUID `json:"product_id"`
	InitialStock int       `json:"initial_stock"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary aggregates a session's revenue. It is derived on demand from raw
// rows and never persisted, so it stays consistent with later corrections.
type Summary struct {
	SessionID           uuid.UUID  `json:"session_id"`
	SessionName         string     `json:"session_name"`
	StartTime           time.Time  `json:"start_time"`
	ObservedAt          time.Time  `json:"observed_at"`
	TotalSalesRevenue   float64    `json:"total_sales_revenue"`
	TotalRentalsRevenue float64    `json:"total_rentals_revenue"`
	TotalRevenue        float64    `json:"total_revenue"`
	SalesCount          int        `json:"sales_count"`
	ProductsSold        int        `json:"products_sold"`
	RentalsCompleted    int        `json:"rentals_completed"`
	AverageSale         float64    `json:"average_sale"`
	Duration            string     `json:"duration"`
	TotalHours          float64    `json:"total_hours"`
	RevenuePerHour      float64    `json:"revenue_per_hour"`
}

// Reconciliation statuses, reported in Spanish as on the sales floor.
const (
	StatusCorrect   = "Correcto"
	StatusShortage  = "Faltante"
	StatusSurplus   = "Sobrante"
)

// ProductReconciliation compares a product's expected stock against its
// live stock for one session window.
type ProductReconciliation struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	InitialStock  int       `json:"initial_stock"`
	Sold          int       `json:"sold"`
	ExpectedStock int       `json:"expected_stock"`
	CurrentStock  int       `json:"current_stock"`
	Difference    int       `json:"difference"`
	Status        string    `json:"status"`
	// Estimated is true when no snapshot existed for the product and the
	// baseline was derived as current + sold.
	Estimated bool `json:"estimated,omitempty"`
}

// ReconciliationInput is the raw per-product data the repository feeds the
// reconciliation computation. InitialStock is nil when the session has no
// snapshot for the product.
type ReconciliationInput struct {
	ProductID    uuid.UUID
	ProductName  string
	CurrentStock int
	Sold         int
	InitialStock *int
}

// CloseResult is returned when a session ends: the frozen session plus its
// final figures.
type CloseResult struct {
	Session        *DailySession           `json:"session"`
	Summary        *Summary                `json:"summary"`
	Reconciliation []ProductReconciliation `json:"reconciliation"`
}

// StartSessionRequest is the payload for opening a work shift.
type StartSessionRequest struct {
	Name string `json:"name,omitempty"`
}
