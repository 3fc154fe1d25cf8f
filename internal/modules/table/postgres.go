package table

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL table repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Table) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO billiard_tables (id, tenant_id, name, hourly_rate, is_available, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.TenantID, t.Name, t.HourlyRate, t.IsAvailable, t.Notes)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Table, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, hourly_rate, is_available, notes, created_at, updated_at
		FROM billiard_tables WHERE id = $1 AND tenant_id = $2`, parsedID, tenantID))
}

func (r *postgresRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Table, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, hourly_rate, is_available, notes, created_at, updated_at
		FROM billiard_tables WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tables []*Table
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, t *Table) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE billiard_tables
		SET name = $1, hourly_rate = $2, notes = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`,
		t.Name, t.HourlyRate, t.Notes, time.Now(), t.ID, t.TenantID)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Table, error) {
	t := &Table{}
	err := row.Scan(&t.ID, &t.TenantID, &t.Name, &t.HourlyRate,
		&t.IsAvailable, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
