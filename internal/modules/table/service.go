package table

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines table business logic.
type Service interface {
	CreateTable(ctx context.Context, tenantID uuid.UUID, req CreateTableRequest) (*Table, error)
	GetTable(ctx context.Context, tenantID uuid.UUID, id string) (*Table, error)
	ListTables(ctx context.Context, tenantID uuid.UUID) ([]*Table, error)
	UpdateTable(ctx context.Context, tenantID uuid.UUID, id string, req UpdateTableRequest) (*Table, error)
}

type service struct{ repo Repository }

// NewService creates a new table service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateTable(ctx context.Context, tenantID uuid.UUID, req CreateTableRequest) (*Table, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.HourlyRate <= 0 {
		return nil, fmt.Errorf("hourly_rate must be greater than zero")
	}
	t := &Table{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        req.Name,
		HourlyRate:  req.HourlyRate,
		IsAvailable: true,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTable(ctx context.Context, tenantID uuid.UUID, id string) (*Table, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) ListTables(ctx context.Context, tenantID uuid.UUID) ([]*Table, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *service) UpdateTable(ctx context.Context, tenantID uuid.UUID, id string, req UpdateTableRequest) (*Table, error) {
	t, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("table not found: %w", err)
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			return nil, fmt.Errorf("hourly_rate must be greater than zero")
		}
		t.HourlyRate = *req.HourlyRate
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, id)
}
