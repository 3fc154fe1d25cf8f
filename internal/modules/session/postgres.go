package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL session repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetActive(ctx context.Context, tenantID uuid.UUID) (*DailySession, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, start_time, end_time, is_active, opened_by, created_at, updated_at
		FROM daily_sessions WHERE tenant_id = $1 AND is_active`, tenantID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*DailySession, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanSession(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, start_time, end_time, is_active, opened_by, created_at, updated_at
		FROM daily_sessions WHERE id = $1 AND tenant_id = $2`, parsedID, tenantID))
}

func (r *postgresRepo) ListClosed(ctx context.Context, tenantID uuid.UUID, limit int) ([]*DailySession, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, start_time, end_time, is_active, opened_by, created_at, updated_at
		FROM daily_sessions
		WHERE tenant_id = $1 AND NOT is_active
		ORDER BY end_time DESC LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*DailySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *postgresRepo) StartWithSnapshots(ctx context.Context, s *DailySession) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO daily_sessions (id, tenant_id, name, start_time, is_active, opened_by)
		VALUES ($1, $2, $3, $4, TRUE, $5)`,
		s.ID, s.TenantID, s.Name, s.StartTime, s.OpenedBy); err != nil {
		return 0, err
	}

	// One snapshot per active product at its current stock, in the same
	// transaction as the session insert, so a partial snapshot set cannot
	// outlive a failed start.
	rows, err := tx.QueryContext(ctx, `
		SELECT id, stock FROM products WHERE tenant_id = $1 AND is_active`, s.TenantID)
	if err != nil {
		return 0, err
	}
	var levels []productLevel
	for rows.Next() {
		var l productLevel
		if err := rows.Scan(&l.productID, &l.stock); err != nil {
			rows.Close()
			return 0, err
		}
		levels = append(levels, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	snapshots := newSnapshots(s.ID, levels)
	for _, snap := range snapshots {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stock_snapshots (id, session_id, product_id, initial_stock)
			VALUES ($1, $2, $3, $4)`,
			snap.ID, snap.SessionID, snap.ProductID, snap.InitialStock); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(snapshots), nil
}

type productLevel struct {
	productID uuid.UUID
	stock     int
}

// newSnapshots builds the baseline rows for a starting session, one per
// product at its current level. Ids are generated here, like every other
// row in the system.
func newSnapshots(sessionID uuid.UUID, levels []productLevel) []*StockSnapshot {
	snapshots := make([]*StockSnapshot, 0, len(levels))
	for _, l := range levels {
		snapshots = append(snapshots, &StockSnapshot{
			ID:           uuid.New(),
			SessionID:    sessionID,
			ProductID:    l.productID,
			InitialStock: l.stock,
		})
	}
	return snapshots
}

func (r *postgresRepo) CloseIfActive(ctx context.Context, tenantID, sessionID uuid.UUID, end time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE daily_sessions
		SET end_time = $1, is_active = FALSE, updated_at = $2
		WHERE id = $3 AND tenant_id = $4 AND is_active`,
		end, time.Now(), sessionID, tenantID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *postgresRepo) SalesTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time, workerID *uuid.UUID) (float64, int, int, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*), COALESCE(SUM(quantity), 0)
		FROM sales
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3`
	args := []interface{}{tenantID, from, to}
	if workerID != nil {
		query += ` AND worker_id = $4`
		args = append(args, *workerID)
	}

	var revenue float64
	var count, quantity int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&revenue, &count, &quantity)
	return revenue, count, quantity, err
}

func (r *postgresRepo) RentalTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time, workerID *uuid.UUID) (float64, int, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM rentals
		WHERE tenant_id = $1 AND end_time >= $2 AND end_time < $3`
	args := []interface{}{tenantID, from, to}
	if workerID != nil {
		query += ` AND worker_id = $4`
		args = append(args, *workerID)
	}

	var revenue float64
	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&revenue, &count)
	return revenue, count, err
}

func (r *postgresRepo) ReconciliationRows(ctx context.Context, tenantID, sessionID uuid.UUID, from, to time.Time) ([]ReconciliationInput, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.stock,
		       COALESCE((SELECT SUM(s.quantity) FROM sales s
		                 WHERE s.product_id = p.id AND s.tenant_id = $1
		                   AND s.created_at >= $3 AND s.created_at < $4), 0),
		       snap.initial_stock
		FROM products p
		LEFT JOIN stock_snapshots snap
		       ON snap.product_id = p.id AND snap.session_id = $2
		WHERE p.tenant_id = $1 AND p.is_active
		ORDER BY p.name`,
		tenantID, sessionID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inputs []ReconciliationInput
	for rows.Next() {
		var in ReconciliationInput
		var initial sql.NullInt64
		if err := rows.Scan(&in.ProductID, &in.ProductName, &in.CurrentStock, &in.Sold, &initial); err != nil {
			return nil, err
		}
		if initial.Valid {
			v := int(initial.Int64)
			in.InitialStock = &v
		}
		inputs = append(inputs, in)
	}
	return inputs, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanSession(row rowScanner) (*DailySession, error) {
	s := &DailySession{}
	var endTime sql.NullTime
	var openedBy sql.NullString
	err := row.Scan(&s.ID, &s.TenantID, &s.Name, &s.StartTime, &endTime,
		&s.IsActive, &openedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		s.EndTime = &t
	}
	if openedBy.Valid {
		if uid, err := uuid.Parse(openedBy.String); err == nil {
			s.OpenedBy = &uid
		}
	}
	return s, nil
}
