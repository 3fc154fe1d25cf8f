package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	active *DailySession
	byID   map[uuid.UUID]*DailySession

	startErr   error
	startCalls int

	closeCalls int

	salesRevenue   float64
	salesCount     int
	productsSold   int
	rentalsRevenue float64
	rentalsClosed  int

	reconInputs []ReconciliationInput
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: map[uuid.UUID]*DailySession{}}
}

func (f *fakeSessionRepo) GetActive(ctx context.Context, tenantID uuid.UUID) (*DailySession, error) {
	return f.active, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*DailySession, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	s, ok := f.byID[sid]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return s, nil
}

func (f *fakeSessionRepo) ListClosed(ctx context.Context, tenantID uuid.UUID, limit int) ([]*DailySession, error) {
	return nil, nil
}

func (f *fakeSessionRepo) StartWithSnapshots(ctx context.Context, s *DailySession) (int, error) {
	if f.startErr != nil {
		return 0, f.startErr
	}
	f.startCalls++
	f.active = s
	f.byID[s.ID] = s
	return 3, nil
}

func (f *fakeSessionRepo) CloseIfActive(ctx context.Context, tenantID, sessionID uuid.UUID, end time.Time) (bool, error) {
	s, ok := f.byID[sessionID]
	if !ok || !s.IsActive {
		return false, nil
	}
	f.closeCalls++
	s.IsActive = false
	s.EndTime = &end
	f.active = nil
	return true, nil
}

func (f *fakeSessionRepo) SalesTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time, workerID *uuid.UUID) (float64, int, int, error) {
	return f.salesRevenue, f.salesCount, f.productsSold, nil
}

func (f *fakeSessionRepo) RentalTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time, workerID *uuid.UUID) (float64, int, error) {
	return f.rentalsRevenue, f.rentalsClosed, nil
}

func (f *fakeSessionRepo) ReconciliationRows(ctx context.Context, tenantID, sessionID uuid.UUID, from, to time.Time) ([]ReconciliationInput, error) {
	return f.reconInputs, nil
}

type fakeNotifier struct {
	titles []string
}

func (f *fakeNotifier) Notify(ctx context.Context, tenantID uuid.UUID, title, body string) {
	f.titles = append(f.titles, title)
}

func TestStartSession(t *testing.T) {
	repo := newFakeSessionRepo()
	notifier := &fakeNotifier{}
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	svc := NewService(repo, notifier).(*service)
	svc.now = func() time.Time { return now }

	tenantID := uuid.New()
	openedBy := uuid.New()
	sess, err := svc.Start(context.Background(), tenantID, openedBy, StartSessionRequest{Name: "Turno noche"})
	require.NoError(t, err)
	assert.Equal(t, "Turno noche", sess.Name)
	assert.Equal(t, now, sess.StartTime)
	assert.True(t, sess.IsActive)
	require.NotNil(t, sess.OpenedBy)
	assert.Equal(t, openedBy, *sess.OpenedBy)
	assert.Equal(t, []string{"Sesión iniciada"}, notifier.titles)
}

func TestStartSessionDefaultName(t *testing.T) {
	repo := newFakeSessionRepo()
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	svc := NewService(repo, nil).(*service)
	svc.now = func() time.Time { return now }

	sess, err := svc.Start(context.Background(), uuid.New(), uuid.Nil, StartSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Turno 2025-03-10", sess.Name)
	assert.Nil(t, sess.OpenedBy)
}

func TestStartSessionBlockedWhenActive(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.active = &DailySession{
		ID:        uuid.New(),
		Name:      "Turno tarde",
		StartTime: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	svc := NewService(repo, nil)

	_, err := svc.Start(context.Background(), uuid.New(), uuid.Nil, StartSessionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already active")
	assert.Contains(t, err.Error(), "Turno tarde")
	assert.Zero(t, repo.startCalls, "no second session row may be written")
}

func TestStartSessionLosesRace(t *testing.T) {
	// GetActive saw nothing, but a concurrent start won: the unique index
	// violation surfaces as a conflict, not as an opaque database error.
	repo := newFakeSessionRepo()
	repo.startErr = errors.New(`pq: duplicate key value violates unique constraint "one_active_session_per_tenant"`)
	svc := NewService(repo, nil)

	_, err := svc.Start(context.Background(), uuid.New(), uuid.Nil, StartSessionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already active")
}

func TestEndSession(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.salesRevenue, repo.salesCount, repo.productsSold = 120.0, 4, 9
	repo.rentalsRevenue, repo.rentalsClosed = 80.0, 3
	repo.reconInputs = []ReconciliationInput{
		{ProductID: uuid.New(), ProductName: "Cerveza", InitialStock: intPtr(10), Sold: 4, CurrentStock: 6},
	}
	notifier := &fakeNotifier{}

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	sess := &DailySession{ID: uuid.New(), TenantID: uuid.New(), Name: "Turno noche", StartTime: start, IsActive: true}
	repo.byID[sess.ID] = sess
	repo.active = sess

	svc := NewService(repo, notifier).(*service)
	svc.now = func() time.Time { return end }

	result, err := svc.End(context.Background(), sess.TenantID, sess.ID.String())
	require.NoError(t, err)
	assert.False(t, result.Session.IsActive)
	require.NotNil(t, result.Session.EndTime)
	assert.Equal(t, end, *result.Session.EndTime)

	assert.InDelta(t, 200.0, result.Summary.TotalRevenue, 1e-9)
	assert.Equal(t, end, result.Summary.ObservedAt, "figures must be computed at the frozen end instant")

	require.Len(t, result.Reconciliation, 1)
	assert.Equal(t, StatusCorrect, result.Reconciliation[0].Status)

	assert.Equal(t, []string{"Sesión cerrada"}, notifier.titles)
}

func TestEndSessionAlreadyClosed(t *testing.T) {
	repo := newFakeSessionRepo()
	end := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	sess := &DailySession{ID: uuid.New(), TenantID: uuid.New(), StartTime: end.Add(-4 * time.Hour), EndTime: &end}
	repo.byID[sess.ID] = sess

	svc := NewService(repo, nil)
	_, err := svc.End(context.Background(), sess.TenantID, sess.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already closed")
	assert.Zero(t, repo.closeCalls)
}

func TestGetActiveNone(t *testing.T) {
	svc := NewService(newFakeSessionRepo(), nil)

	sess, err := svc.GetActive(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSummarizeClosedSessionUsesFrozenWindow(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.salesRevenue, repo.salesCount = 50.0, 2

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	sess := &DailySession{ID: uuid.New(), TenantID: uuid.New(), Name: "Turno", StartTime: start, EndTime: &end}
	repo.byID[sess.ID] = sess

	svc := NewService(repo, nil).(*service)
	// Clock keeps moving after close; the summary window must not.
	svc.now = func() time.Time { return end.Add(48 * time.Hour) }

	sum, err := svc.Summarize(context.Background(), sess.TenantID, sess.ID.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, end, sum.ObservedAt)
	assert.InDelta(t, 3.0, sum.TotalHours, 1e-9)
}
