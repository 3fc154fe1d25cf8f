package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for clients and their debt.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Client, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Client, error)
	Update(ctx context.Context, c *Client) error

	// GetDebt aggregates the client's unpaid sales and rentals.
	GetDebt(ctx context.Context, tenantID, clientID uuid.UUID) (*Debt, error)
	// SettleDebt marks all of the client's unpaid sales and rentals as paid.
	// Both updates run in a single transaction.
	SettleDebt(ctx context.Context, tenantID, clientID uuid.UUID) error
}
