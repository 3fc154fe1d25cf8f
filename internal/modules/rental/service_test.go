package rental

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRentalRepo struct {
	rental *Rental
	rate   float64

	startErr     error
	started      *Rental
	closedAmount float64
	closedEnd    time.Time
	closedPaid   bool
	closeCalls   int

	active []*ActiveRental
}

func (f *fakeRentalRepo) StartAndOccupy(ctx context.Context, r *Rental) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = r
	return nil
}

func (f *fakeRentalRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, error) {
	if f.rental == nil {
		return nil, fmt.Errorf("rental not found")
	}
	return f.rental, nil
}

func (f *fakeRentalRepo) GetWithRate(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, float64, error) {
	if f.rental == nil {
		return nil, 0, fmt.Errorf("rental not found")
	}
	return f.rental, f.rate, nil
}

func (f *fakeRentalRepo) CloseAndRelease(ctx context.Context, tenantID, rentalID uuid.UUID, end time.Time, amount float64, isPaid bool) error {
	f.closeCalls++
	f.closedEnd = end
	f.closedAmount = amount
	f.closedPaid = isPaid
	f.rental.EndTime = &end
	f.rental.TotalAmount = &amount
	f.rental.IsPaid = isPaid
	return nil
}

func (f *fakeRentalRepo) SetPaid(ctx context.Context, tenantID uuid.UUID, id string, paid bool) error {
	f.rental.IsPaid = paid
	return nil
}

func (f *fakeRentalRepo) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*ActiveRental, error) {
	return f.active, nil
}

func (f *fakeRentalRepo) ListClosedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Rental, error) {
	return nil, nil
}

func TestCloseRentalComputesCharge(t *testing.T) {
	start := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	tenantID := uuid.New()

	repo := &fakeRentalRepo{
		rental: &Rental{ID: uuid.New(), TenantID: tenantID, TableID: uuid.New(), StartTime: start},
		rate:   10.0,
	}
	svc := NewService(repo).(*service)
	svc.now = func() time.Time { return start.Add(2 * time.Hour) }

	r, err := svc.CloseRental(context.Background(), tenantID, repo.rental.ID.String(), CloseRentalRequest{IsPaid: true})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, repo.closedAmount, 1e-9)
	assert.True(t, repo.closedPaid)
	require.NotNil(t, r.TotalAmount)
	assert.InDelta(t, 20.0, *r.TotalAmount, 1e-9)
}

func TestCloseRentalAlreadyClosed(t *testing.T) {
	start := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	tenantID := uuid.New()

	repo := &fakeRentalRepo{
		rental: &Rental{ID: uuid.New(), TenantID: tenantID, StartTime: start, EndTime: &end},
		rate:   10.0,
	}
	svc := NewService(repo)

	_, err := svc.CloseRental(context.Background(), tenantID, repo.rental.ID.String(), CloseRentalRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already closed")
	assert.Zero(t, repo.closeCalls, "a closed rental must never be re-billed")
}

func TestStartRentalOccupiedTable(t *testing.T) {
	repo := &fakeRentalRepo{startErr: fmt.Errorf("table is not available")}
	svc := NewService(repo)

	_, err := svc.StartRental(context.Background(), uuid.New(), uuid.New(), StartRentalRequest{TableID: uuid.New().String()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestStartRentalRequiresTable(t *testing.T) {
	svc := NewService(&fakeRentalRepo{})

	_, err := svc.StartRental(context.Background(), uuid.New(), uuid.New(), StartRentalRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table_id is required")
}

func TestListActiveFillsRunningCharge(t *testing.T) {
	start := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	repo := &fakeRentalRepo{
		active: []*ActiveRental{{
			Rental:     Rental{ID: uuid.New(), StartTime: start},
			TableName:  "Mesa 1",
			HourlyRate: 8.0,
		}},
	}
	svc := NewService(repo).(*service)
	svc.now = func() time.Time { return start.Add(90 * time.Minute) }

	active, err := svc.ListActive(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.InDelta(t, 1.5, active[0].ElapsedHours, 1e-9)
	assert.InDelta(t, 12.0, active[0].CurrentAmount, 1e-9)
	assert.Equal(t, "1h 30m", active[0].Duration)
}
