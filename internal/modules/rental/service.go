package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines rental business logic.
type Service interface {
	StartRental(ctx context.Context, tenantID uuid.UUID, workerID uuid.UUID, req StartRentalRequest) (*Rental, error)
	CloseRental(ctx context.Context, tenantID uuid.UUID, id string, req CloseRentalRequest) (*Rental, error)
	MarkPaid(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, error)
	GetRental(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, error)
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]*ActiveRental, error)
	ListClosedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Rental, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new rental service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) StartRental(ctx context.Context, tenantID uuid.UUID, workerID uuid.UUID, req StartRentalRequest) (*Rental, error) {
	if req.TableID == "" {
		return nil, fmt.Errorf("table_id is required")
	}
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return nil, fmt.Errorf("invalid table_id: %w", err)
	}

	r := &Rental{
		ID:        uuid.New(),
		TenantID:  tenantID,
		TableID:   tableID,
		StartTime: s.now(),
	}
	if workerID != uuid.Nil {
		r.WorkerID = &workerID
	}
	if req.ClientID != "" {
		cid, err := uuid.Parse(req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("invalid client_id: %w", err)
		}
		r.ClientID = &cid
	}

	if err := s.repo.StartAndOccupy(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) CloseRental(ctx context.Context, tenantID uuid.UUID, id string, req CloseRentalRequest) (*Rental, error) {
	r, rate, err := s.repo.GetWithRate(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("rental not found: %w", err)
	}
	if r.EndTime != nil {
		return nil, fmt.Errorf("rental is already closed")
	}

	end := s.now()
	_, amount := Charge(r.StartTime, end, rate)
	if err := s.repo.CloseAndRelease(ctx, tenantID, r.ID, end, amount, req.IsPaid); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) MarkPaid(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, error) {
	if err := s.repo.SetPaid(ctx, tenantID, id, true); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) GetRental(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*ActiveRental, error) {
	active, err := s.repo.ListActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, a := range active {
		a.ElapsedHours, a.CurrentAmount = Charge(a.StartTime, now, a.HourlyRate)
		a.Duration = FormatDuration(a.StartTime, now)
	}
	return active, nil
}

func (s *service) ListClosedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Rental, error) {
	return s.repo.ListClosedBetween(ctx, tenantID, from, to)
}
