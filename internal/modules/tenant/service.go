package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines tenant business logic.
type Service interface {
	CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error)
	GetTenant(ctx context.Context, id string) (*Tenant, error)
	ListTenants(ctx context.Context) ([]*Tenant, error)
	UpdateTenant(ctx context.Context, id string, req UpdateTenantRequest) (*Tenant, error)
	DeactivateTenant(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new tenant service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	t := &Tenant{
		ID:           uuid.New(),
		Name:         req.Name,
		BusinessName: req.BusinessName,
		LogoURL:      req.LogoURL,
		Phone:        req.Phone,
		Address:      req.Address,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListTenants(ctx context.Context) ([]*Tenant, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateTenant(ctx context.Context, id string, req UpdateTenantRequest) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.BusinessName != "" {
		t.BusinessName = req.BusinessName
	}
	if req.LogoURL != "" {
		t.LogoURL = req.LogoURL
	}
	if req.Phone != "" {
		t.Phone = req.Phone
	}
	if req.Address != "" {
		t.Address = req.Address
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, t.ID.String())
}

func (s *service) DeactivateTenant(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("tenant not found: %w", err)
	}
	return s.repo.SetActive(ctx, id, false)
}
