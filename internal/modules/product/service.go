package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines product and stock business logic.
type Service interface {
	CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, tenantID uuid.UUID, id string) (*Product, error)
	ListProducts(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, tenantID uuid.UUID, id string, req UpdateProductRequest) (*Product, error)
	DeactivateProduct(ctx context.Context, tenantID uuid.UUID, id string) error

	AdjustStock(ctx context.Context, tenantID uuid.UUID, id string, req AdjustStockRequest) (*Product, error)
	ListStockChanges(ctx context.Context, tenantID uuid.UUID, id string, limit int) ([]*StockChange, error)
}

type service struct{ repo Repository }

// NewService creates a new product service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	p := &Product{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		IsActive: true,
	}
	initial := &StockChange{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProductID:      p.ID,
		ChangeType:     ChangeInitial,
		QuantityChange: req.Stock,
		StockBefore:    0,
		StockAfter:     req.Stock,
	}
	if err := s.repo.Create(ctx, p, initial); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, tenantID uuid.UUID, id string) (*Product, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) ListProducts(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*Product, error) {
	return s.repo.ListByTenant(ctx, tenantID, activeOnly)
}

func (s *service) UpdateProduct(ctx context.Context, tenantID uuid.UUID, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		p.Price = *req.Price
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) DeactivateProduct(ctx context.Context, tenantID uuid.UUID, id string) error {
	if _, err := s.repo.GetByID(ctx, tenantID, id); err != nil {
		return fmt.Errorf("product not found: %w", err)
	}
	return s.repo.SetActive(ctx, tenantID, id, false)
}

func (s *service) AdjustStock(ctx context.Context, tenantID uuid.UUID, id string, req AdjustStockRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	delta := req.Delta
	changeType := ChangeIncrease
	if req.NewStock != nil {
		if *req.NewStock < 0 {
			return nil, fmt.Errorf("new_stock cannot be negative")
		}
		delta = *req.NewStock - p.Stock
		changeType = ChangeAdjustment
	} else if delta < 0 {
		changeType = ChangeDecrease
	}
	if delta == 0 {
		return p, nil
	}

	if _, _, err := s.repo.AdjustStock(ctx, tenantID, p.ID, delta, changeType, req.Reason); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) ListStockChanges(ctx context.Context, tenantID uuid.UUID, id string, limit int) ([]*StockChange, error) {
	p, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return s.repo.ListStockChanges(ctx, tenantID, p.ID, limit)
}
