package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Service defines the interface for user-related business logic. Read and
// mutation operations on a single account take the caller's identity:
// super_admin reaches every account, other roles only accounts inside
// their own tenant.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, caller middleware.Identity, id string) (*User, error)
	ListTenantUsers(ctx context.Context, tenantID uuid.UUID) ([]*User, error)
	ChangeRole(ctx context.Context, caller middleware.Identity, id string, req UpdateRoleRequest) (*User, error)
	Deactivate(ctx context.Context, caller middleware.Identity, id string) error
}
