package rental

import (
	"time"

	"github.com/google/uuid"
)

// Rental is a timed use of a billiard table. EndTime and TotalAmount stay
// null while the rental is open; once closed the row is immutable except
// for payment-status flips.
type Rental struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	TableID     uuid.UUID  `json:"table_id"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	WorkerID    *uuid.UUID `json:"worker_id,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	TotalAmount *float64   `json:"total_amount,omitempty"`
	IsPaid      bool       `json:"is_paid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ActiveRental is a live view of an open rental with its running charge.
type ActiveRental struct {
	Rental
	TableName     string  `json:"table_name"`
	HourlyRate    float64 `json:"hourly_rate"`
	ElapsedHours  float64 `json:"elapsed_hours"`
	CurrentAmount float64 `json:"current_amount"`
	Duration      string  `json:"duration"`
}

// StartRentalRequest is the payload for opening a rental.
type StartRentalRequest struct {
	TableID  string `json:"table_id"`
	ClientID string `json:"client_id,omitempty"`
}

// CloseRentalRequest is the payload for closing a rental.
type CloseRentalRequest struct {
	IsPaid bool `json:"is_paid"`
}
