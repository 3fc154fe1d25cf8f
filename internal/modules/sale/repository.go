package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines data access for sales.
type Repository interface {
	// CreateWithStock inserts the sale, decrements the product's stock with
	// a guarded update, and appends the stock audit row in one transaction.
	// Fails without writing anything when stock is short.
	CreateWithStock(ctx context.Context, s *Sale) error

	GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Sale, error)
	SetPaid(ctx context.Context, tenantID uuid.UUID, id string, paid bool) error
	ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Sale, error)
	ListByRental(ctx context.Context, tenantID, rentalID uuid.UUID) ([]*Sale, error)
	ListByClient(ctx context.Context, tenantID, clientID uuid.UUID, unpaidOnly bool) ([]*Sale, error)
}
