package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lfarroc/billarpro-backend/internal/modules/client"
	"github.com/lfarroc/billarpro-backend/internal/modules/product"
	"github.com/lfarroc/billarpro-backend/internal/modules/rental"
)

// Service defines sale business logic.
type Service interface {
	CreateSale(ctx context.Context, tenantID, workerID uuid.UUID, req CreateSaleRequest) (*Sale, error)
	MarkPaid(ctx context.Context, tenantID uuid.UUID, id string) (*Sale, error)
	GetSale(ctx context.Context, tenantID uuid.UUID, id string) (*Sale, error)
	ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Sale, error)
	ListByRental(ctx context.Context, tenantID uuid.UUID, rentalID string) ([]*Sale, error)
	ListByClient(ctx context.Context, tenantID uuid.UUID, clientID string, unpaidOnly bool) ([]*Sale, error)
}

type service struct {
	repo     Repository
	products product.Repository
	clients  client.Repository
	rentals  rental.Repository
}

// NewService creates a new sale service.
func NewService(repo Repository, products product.Repository, clients client.Repository, rentals rental.Repository) Service {
	return &service{repo: repo, products: products, clients: clients, rentals: rentals}
}

func (s *service) CreateSale(ctx context.Context, tenantID, workerID uuid.UUID, req CreateSaleRequest) (*Sale, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("product_id is required")
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than zero")
	}

	p, err := s.products.GetByID(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if !p.IsActive {
		return nil, fmt.Errorf("product %s is inactive", p.Name)
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	sale := &Sale{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ProductID:   p.ID,
		Quantity:    req.Quantity,
		UnitPrice:   p.Price,
		TotalAmount: p.Price * float64(req.Quantity),
		IsPaid:      isPaid,
	}
	if workerID != uuid.Nil {
		sale.WorkerID = &workerID
	}
	if req.RentalID != "" {
		rid, err := uuid.Parse(req.RentalID)
		if err != nil {
			return nil, fmt.Errorf("invalid rental_id: %w", err)
		}
		if _, err := s.rentals.GetByID(ctx, tenantID, req.RentalID); err != nil {
			return nil, fmt.Errorf("rental not found: %w", err)
		}
		sale.RentalID = &rid
	}
	if req.ClientID != "" {
		cid, err := uuid.Parse(req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("invalid client_id: %w", err)
		}
		c, err := s.clients.GetByID(ctx, tenantID, req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("client not found: %w", err)
		}
		// A fiado needs a client who is allowed credit.
		if !isPaid && !c.PermitirFiado {
			return nil, fmt.Errorf("client %s does not permit credit", c.Name)
		}
		sale.ClientID = &cid
	}
	if !isPaid && sale.ClientID == nil {
		return nil, fmt.Errorf("an unpaid sale requires a client")
	}

	if err := s.repo.CreateWithStock(ctx, sale); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, sale.ID.String())
}

func (s *service) MarkPaid(ctx context.Context, tenantID uuid.UUID, id string) (*Sale, error) {
	if err := s.repo.SetPaid(ctx, tenantID, id, true); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) GetSale(ctx context.Context, tenantID uuid.UUID, id string) (*Sale, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Sale, error) {
	return s.repo.ListBetween(ctx, tenantID, from, to)
}

func (s *service) ListByRental(ctx context.Context, tenantID uuid.UUID, rentalID string) ([]*Sale, error) {
	rid, err := uuid.Parse(rentalID)
	if err != nil {
		return nil, fmt.Errorf("invalid rental_id: %w", err)
	}
	return s.repo.ListByRental(ctx, tenantID, rid)
}

func (s *service) ListByClient(ctx context.Context, tenantID uuid.UUID, clientID string, unpaidOnly bool) ([]*Sale, error) {
	cid, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client_id: %w", err)
	}
	return s.repo.ListByClient(ctx, tenantID, cid, unpaidOnly)
}
