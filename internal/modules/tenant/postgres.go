package tenant

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL tenant repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Tenant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, business_name, logo_url, phone, address, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Name, t.BusinessName, t.LogoURL, t.Phone, t.Address, t.IsActive)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Tenant, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, name, business_name, logo_url, phone, address, is_active, created_at, updated_at
		FROM tenants WHERE id = $1`, parsedID))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Tenant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, business_name, logo_url, phone, address, is_active, created_at, updated_at
		FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tenants []*Tenant
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, t *Tenant) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tenants
		SET name = $1, business_name = $2, logo_url = $3, phone = $4, address = $5, updated_at = $6
		WHERE id = $7`,
		t.Name, t.BusinessName, t.LogoURL, t.Phone, t.Address, time.Now(), t.ID)
	return err
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tenants SET is_active = $1, updated_at = $2 WHERE id = $3`, active, time.Now(), id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Tenant, error) {
	t := &Tenant{}
	err := row.Scan(&t.ID, &t.Name, &t.BusinessName, &t.LogoURL,
		&t.Phone, &t.Address, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
