package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines data access for daily sessions, snapshots, and the
// aggregate queries feeding summaries and reconciliation.
type Repository interface {
	// GetActive returns the tenant's active session, or nil when none.
	GetActive(ctx context.Context, tenantID uuid.UUID) (*DailySession, error)
	GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*DailySession, error)
	ListClosed(ctx context.Context, tenantID uuid.UUID, limit int) ([]*DailySession, error)

	// StartWithSnapshots inserts the session row and one snapshot per
	// active product in a single transaction; the partial unique index on
	// (tenant_id) WHERE is_active turns a start race into a unique
	// violation. Returns the number of snapshots written.
	StartWithSnapshots(ctx context.Context, s *DailySession) (int, error)

	// CloseIfActive freezes end_time with a guarded update. Returns false
	// when the session was already closed by a concurrent actor.
	CloseIfActive(ctx context.Context, tenantID, sessionID uuid.UUID, end time.Time) (bool, error)

	// SalesTotals aggregates sales with created_at in [from, to), optionally
	// scoped to one worker.
	SalesTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time, workerID *uuid.UUID) (revenue float64, count, quantity int, err error)

	// RentalTotals aggregates rentals with end_time in [from, to),
	// optionally scoped to one worker.
	RentalTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time, workerID *uuid.UUID) (revenue float64, count int, err error)

	// ReconciliationRows returns, for every active product, its live stock,
	// the quantity sold inside [from, to), and the session's snapshot level
	// when one exists.
	ReconciliationRows(ctx context.Context, tenantID, sessionID uuid.UUID, from, to time.Time) ([]ReconciliationInput, error)
}
