package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notifier publishes operational notices to the tenant's users. Optional;
// a nil notifier disables notices.
type Notifier interface {
	Notify(ctx context.Context, tenantID uuid.UUID, title, body string)
}

// Service is the single mutation surface for the session lifecycle.
// Every caller that needs "the current session" goes through GetActive
// instead of re-deriving it.
type Service interface {
	GetActive(ctx context.Context, tenantID uuid.UUID) (*DailySession, error)
	Start(ctx context.Context, tenantID uuid.UUID, openedBy uuid.UUID, req StartSessionRequest) (*DailySession, error)
	End(ctx context.Context, tenantID uuid.UUID, sessionID string) (*CloseResult, error)
	GetSession(ctx context.Context, tenantID uuid.UUID, sessionID string) (*DailySession, error)
	ListClosed(ctx context.Context, tenantID uuid.UUID, limit int) ([]*DailySession, error)

	// Summarize computes the financial summary at the given instant; for a
	// closed session the frozen end_time always wins as the window's right
	// edge. workerID optionally narrows the figures to one worker's
	// activity.
	Summarize(ctx context.Context, tenantID uuid.UUID, sessionID string, workerID *uuid.UUID) (*Summary, error)

	// Reconcile computes the stock reconciliation report. Read-only and
	// idempotent.
	Reconcile(ctx context.Context, tenantID uuid.UUID, sessionID string) ([]ProductReconciliation, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

// NewService creates a new session service. notifier may be nil.
func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier, now: time.Now}
}

func (s *service) GetActive(ctx context.Context, tenantID uuid.UUID) (*DailySession, error) {
	return s.repo.GetActive(ctx, tenantID)
}

func (s *service) Start(ctx context.Context, tenantID uuid.UUID, openedBy uuid.UUID, req StartSessionRequest) (*DailySession, error) {
	// Re-queried guard; the partial unique index catches the race this
	// check cannot.
	existing, err := s.repo.GetActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("a session is already active: %s (started %s)",
			existing.Name, existing.StartTime.Format(time.RFC3339))
	}

	now := s.now()
	name := req.Name
	if name == "" {
		name = "Turno " + now.Format("2006-01-02")
	}

	sess := &DailySession{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		StartTime: now,
		IsActive:  true,
	}
	if openedBy != uuid.Nil {
		sess.OpenedBy = &openedBy
	}

	if _, err := s.repo.StartWithSnapshots(ctx, sess); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, fmt.Errorf("a session is already active")
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, tenantID, "Sesión iniciada", fmt.Sprintf("%s abrió a las %s", name, now.Format("15:04")))
	}
	return sess, nil
}

func (s *service) End(ctx context.Context, tenantID uuid.UUID, sessionID string) (*CloseResult, error) {
	sess, err := s.repo.GetByID(ctx, tenantID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if !sess.IsActive {
		return nil, fmt.Errorf("session is already closed")
	}

	end := s.now()
	closed, err := s.repo.CloseIfActive(ctx, tenantID, sess.ID, end)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, fmt.Errorf("session is already closed")
	}
	sess.EndTime = &end
	sess.IsActive = false

	summary, err := s.summarize(ctx, sess, end, nil)
	if err != nil {
		return nil, err
	}
	reconciliation, err := s.reconcile(ctx, sess, end)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, tenantID, "Sesión cerrada",
			fmt.Sprintf("%s cerró con ingresos de %.2f", sess.Name, summary.TotalRevenue))
	}
	return &CloseResult{Session: sess, Summary: summary, Reconciliation: reconciliation}, nil
}

func (s *service) GetSession(ctx context.Context, tenantID uuid.UUID, sessionID string) (*DailySession, error) {
	return s.repo.GetByID(ctx, tenantID, sessionID)
}

func (s *service) ListClosed(ctx context.Context, tenantID uuid.UUID, limit int) ([]*DailySession, error) {
	return s.repo.ListClosed(ctx, tenantID, limit)
}

func (s *service) Summarize(ctx context.Context, tenantID uuid.UUID, sessionID string, workerID *uuid.UUID) (*Summary, error) {
	sess, err := s.repo.GetByID(ctx, tenantID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return s.summarize(ctx, sess, s.windowEnd(sess), workerID)
}

func (s *service) Reconcile(ctx context.Context, tenantID uuid.UUID, sessionID string) ([]ProductReconciliation, error) {
	sess, err := s.repo.GetByID(ctx, tenantID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return s.reconcile(ctx, sess, s.windowEnd(sess))
}

// windowEnd picks the aggregation window's right edge: the frozen end_time
// for a closed session, now for an active one.
func (s *service) windowEnd(sess *DailySession) time.Time {
	if sess.EndTime != nil {
		return *sess.EndTime
	}
	return s.now()
}

func (s *service) summarize(ctx context.Context, sess *DailySession, observed time.Time, workerID *uuid.UUID) (*Summary, error) {
	salesRevenue, salesCount, productsSold, err := s.repo.SalesTotals(ctx, sess.TenantID, sess.StartTime, observed, workerID)
	if err != nil {
		return nil, err
	}
	rentalsRevenue, rentalsCompleted, err := s.repo.RentalTotals(ctx, sess.TenantID, sess.StartTime, observed, workerID)
	if err != nil {
		return nil, err
	}
	return BuildSummary(sess, observed, salesRevenue, salesCount, productsSold, rentalsRevenue, rentalsCompleted), nil
}

func (s *service) reconcile(ctx context.Context, sess *DailySession, observed time.Time) ([]ProductReconciliation, error) {
	inputs, err := s.repo.ReconciliationRows(ctx, sess.TenantID, sess.ID, sess.StartTime, observed)
	if err != nil {
		return nil, err
	}
	return BuildReconciliation(inputs), nil
}
