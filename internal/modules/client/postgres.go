package client

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL client repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, tenant_id, name, phone, permitir_fiado)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.TenantID, c.Name, c.Phone, c.PermitirFiado)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Client, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, phone, permitir_fiado, created_at, updated_at
		FROM clients WHERE id = $1 AND tenant_id = $2`, parsedID, tenantID))
}

func (r *postgresRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, phone, permitir_fiado, created_at, updated_at
		FROM clients WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var clients []*Client
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Client) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE clients SET name = $1, phone = $2, permitir_fiado = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`,
		c.Name, c.Phone, c.PermitirFiado, time.Now(), c.ID, c.TenantID)
	return err
}

func (r *postgresRepo) GetDebt(ctx context.Context, tenantID, clientID uuid.UUID) (*Debt, error) {
	d := &Debt{ClientID: clientID}
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales WHERE tenant_id = $1 AND client_id = $2 AND NOT is_paid`,
		tenantID, clientID).Scan(&d.UnpaidSales, &d.SaleCount)
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM rentals
		WHERE tenant_id = $1 AND client_id = $2 AND end_time IS NOT NULL AND NOT is_paid`,
		tenantID, clientID).Scan(&d.UnpaidRentals, &d.RentalCount)
	if err != nil {
		return nil, err
	}
	d.Total = d.UnpaidSales + d.UnpaidRentals
	return d, nil
}

func (r *postgresRepo) SettleDebt(ctx context.Context, tenantID, clientID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE sales SET is_paid = TRUE, updated_at = $1
		WHERE tenant_id = $2 AND client_id = $3 AND NOT is_paid`,
		now, tenantID, clientID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE rentals SET is_paid = TRUE, updated_at = $1
		WHERE tenant_id = $2 AND client_id = $3 AND end_time IS NOT NULL AND NOT is_paid`,
		now, tenantID, clientID); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Client, error) {
	c := &Client{}
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Phone,
		&c.PermitirFiado, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
