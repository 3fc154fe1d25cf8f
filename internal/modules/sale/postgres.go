package sale

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL sale repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateWithStock(ctx context.Context, s *Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Guarded decrement: a concurrent sale cannot drive stock negative.
	var after int
	err = tx.QueryRowContext(ctx, `
		UPDATE products SET stock = stock - $1, updated_at = $2
		WHERE id = $3 AND tenant_id = $4 AND stock >= $1
		RETURNING stock`,
		s.Quantity, time.Now(), s.ProductID, s.TenantID).Scan(&after)
	if err == sql.ErrNoRows {
		return fmt.Errorf("insufficient stock")
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO stock_changes
		  (id, tenant_id, product_id, change_type, quantity_change, stock_before, stock_after, reason)
		VALUES ($1, $2, $3, 'sale', $4, $5, $6, $7)`,
		uuid.New(), s.TenantID, s.ProductID, -s.Quantity, after+s.Quantity, after,
		fmt.Sprintf("sale %s", s.ID)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sales
		  (id, tenant_id, product_id, rental_id, client_id, worker_id,
		   quantity, unit_price, total_amount, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.TenantID, s.ProductID, s.RentalID, s.ClientID, s.WorkerID,
		s.Quantity, s.UnitPrice, s.TotalAmount, s.IsPaid); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Sale, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanSale(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, product_id, rental_id, client_id, worker_id,
		       quantity, unit_price, total_amount, is_paid, created_at, updated_at
		FROM sales WHERE id = $1 AND tenant_id = $2`, parsedID, tenantID))
}

func (r *postgresRepo) SetPaid(ctx context.Context, tenantID uuid.UUID, id string, paid bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sales SET is_paid = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4`,
		paid, time.Now(), id, tenantID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("sale not found")
	}
	return nil
}

func (r *postgresRepo) ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, product_id, rental_id, client_id, worker_id,
		       quantity, unit_price, total_amount, is_paid, created_at, updated_at
		FROM sales
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at`, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *postgresRepo) ListByRental(ctx context.Context, tenantID, rentalID uuid.UUID) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, product_id, rental_id, client_id, worker_id,
		       quantity, unit_price, total_amount, is_paid, created_at, updated_at
		FROM sales WHERE tenant_id = $1 AND rental_id = $2 ORDER BY created_at`,
		tenantID, rentalID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *postgresRepo) ListByClient(ctx context.Context, tenantID, clientID uuid.UUID, unpaidOnly bool) ([]*Sale, error) {
	query := `
		SELECT id, tenant_id, product_id, rental_id, client_id, worker_id,
		       quantity, unit_price, total_amount, is_paid, created_at, updated_at
		FROM sales WHERE tenant_id = $1 AND client_id = $2`
	if unpaidOnly {
		query += ` AND NOT is_paid`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]*Sale, error) {
	defer rows.Close()
	var sales []*Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanSale(row rowScanner) (*Sale, error) {
	s := &Sale{}
	var rentalID, clientID, workerID sql.NullString
	err := row.Scan(&s.ID, &s.TenantID, &s.ProductID, &rentalID, &clientID, &workerID,
		&s.Quantity, &s.UnitPrice, &s.TotalAmount, &s.IsPaid, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rentalID.Valid {
		if rid, err := uuid.Parse(rentalID.String); err == nil {
			s.RentalID = &rid
		}
	}
	if clientID.Valid {
		if cid, err := uuid.Parse(clientID.String); err == nil {
			s.ClientID = &cid
		}
	}
	if workerID.Valid {
		if wid, err := uuid.Parse(workerID.String); err == nil {
			s.WorkerID = &wid
		}
	}
	return s, nil
}
