package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for user accounts.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	SetActive(ctx context.Context, id string, active bool) error
}
