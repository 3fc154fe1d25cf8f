package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines client business logic.
type Service interface {
	CreateClient(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*Client, error)
	GetClient(ctx context.Context, tenantID uuid.UUID, id string) (*Client, error)
	ListClients(ctx context.Context, tenantID uuid.UUID) ([]*Client, error)
	UpdateClient(ctx context.Context, tenantID uuid.UUID, id string, req UpdateClientRequest) (*Client, error)
	GetDebt(ctx context.Context, tenantID uuid.UUID, id string) (*Debt, error)
	SettleDebt(ctx context.Context, tenantID uuid.UUID, id string) (*Debt, error)
}

type service struct{ repo Repository }

// NewService creates a new client service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateClient(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*Client, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	c := &Client{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Name:          req.Name,
		Phone:         req.Phone,
		PermitirFiado: req.PermitirFiado,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetClient(ctx context.Context, tenantID uuid.UUID, id string) (*Client, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) ListClients(ctx context.Context, tenantID uuid.UUID) ([]*Client, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *service) UpdateClient(ctx context.Context, tenantID uuid.UUID, id string, req UpdateClientRequest) (*Client, error) {
	c, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.PermitirFiado != nil {
		c.PermitirFiado = *req.PermitirFiado
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) GetDebt(ctx context.Context, tenantID uuid.UUID, id string) (*Debt, error) {
	c, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}
	return s.repo.GetDebt(ctx, tenantID, c.ID)
}

func (s *service) SettleDebt(ctx context.Context, tenantID uuid.UUID, id string) (*Debt, error) {
	c, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}
	if err := s.repo.SettleDebt(ctx, tenantID, c.ID); err != nil {
		return nil, err
	}
	return s.repo.GetDebt(ctx, tenantID, c.ID)
}
