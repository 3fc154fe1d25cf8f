package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated billiard-hall business. Every domain row is scoped
// to exactly one tenant.
type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	BusinessName string    `json:"business_name,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateTenantRequest is the payload for registering a new business.
type CreateTenantRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// UpdateTenantRequest is the payload for editing business details.
type UpdateTenantRequest struct {
	Name         string `json:"name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}
