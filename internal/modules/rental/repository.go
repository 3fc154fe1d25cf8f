package rental

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines data access for rentals. The start and close
// operations pair the rental write with the table-availability flip in a
// single transaction.
type Repository interface {
	// StartAndOccupy inserts the rental and marks its table unavailable.
	// Fails without writing anything when the table is already occupied.
	StartAndOccupy(ctx context.Context, r *Rental) error

	GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, error)

	// GetWithRate returns the rental together with its table's hourly rate.
	GetWithRate(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, float64, error)

	// CloseAndRelease freezes end_time and total_amount and releases the
	// table. The rental row is only touched while still open, so a
	// concurrent close loses cleanly instead of overwriting the totals.
	CloseAndRelease(ctx context.Context, tenantID uuid.UUID, rentalID uuid.UUID, end time.Time, amount float64, isPaid bool) error

	SetPaid(ctx context.Context, tenantID uuid.UUID, id string, paid bool) error
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]*ActiveRental, error)
	ListClosedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Rental, error)
}
