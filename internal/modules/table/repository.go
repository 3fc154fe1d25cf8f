package table

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for billiard tables.
type Repository interface {
	Create(ctx context.Context, t *Table) error
	GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Table, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Table, error)
	Update(ctx context.Context, t *Table) error
}
