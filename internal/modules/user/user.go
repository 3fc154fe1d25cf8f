package user

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which actions a user may perform.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleWorker     Role = "worker"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleWorker:
		return true
	}
	return false
}

// User represents an operator account. super_admin users have no tenant;
// admin and worker accounts always belong to one.
type User struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name,omitempty"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RegisterRequest is the payload for creating a user account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id,omitempty"`
}

// UpdateRoleRequest is the payload for changing a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}
