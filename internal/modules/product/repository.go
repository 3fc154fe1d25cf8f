package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for products and the stock audit log.
type Repository interface {
	Create(ctx context.Context, p *Product, initial *StockChange) error
	GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Product, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	SetActive(ctx context.Context, tenantID uuid.UUID, id string, active bool) error

	// AdjustStock applies a signed delta atomically and appends the audit
	// row in the same transaction. It returns the stock level before and
	// after the change. Fails without mutating when the delta would take
	// stock below zero.
	AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, delta int, changeType ChangeType, reason string) (before, after int, err error)

	ListStockChanges(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]*StockChange, error)
}
