package product

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product, initial *StockChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO products (id, tenant_id, name, category, price, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.TenantID, p.Name, p.Category, p.Price, p.Stock, p.IsActive); err != nil {
		return err
	}
	if initial != nil {
		if err := insertStockChange(ctx, tx, initial); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Product, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, category, price, stock, is_active, created_at, updated_at
		FROM products WHERE id = $1 AND tenant_id = $2`, parsedID, tenantID))
}

func (r *postgresRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*Product, error) {
	query := `
		SELECT id, tenant_id, name, category, price, stock, is_active, created_at, updated_at
		FROM products WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET name = $1, category = $2, price = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`,
		p.Name, p.Category, p.Price, time.Now(), p.ID, p.TenantID)
	return err
}

func (r *postgresRepo) SetActive(ctx context.Context, tenantID uuid.UUID, id string, active bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET is_active = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4`,
		active, time.Now(), id, tenantID)
	return err
}

func (r *postgresRepo) AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, delta int, changeType ChangeType, reason string) (int, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	before, after, err := adjustStockTx(ctx, tx, tenantID, productID, delta, changeType, reason)
	if err != nil {
		return 0, 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return before, after, nil
}

// adjustStockTx applies the delta with a single guarded UPDATE so two
// concurrent writers cannot lose an update, then appends the audit row.
func adjustStockTx(ctx context.Context, tx *sql.Tx, tenantID, productID uuid.UUID, delta int, changeType ChangeType, reason string) (int, int, error) {
	var after int
	err := tx.QueryRowContext(ctx, `
		UPDATE products SET stock = stock + $1, updated_at = $2
		WHERE id = $3 AND tenant_id = $4 AND stock + $1 >= 0
		RETURNING stock`,
		delta, time.Now(), productID, tenantID).Scan(&after)
	if err == sql.ErrNoRows {
		return 0, 0, fmt.Errorf("insufficient stock for product %s", productID)
	}
	if err != nil {
		return 0, 0, err
	}

	before := after - delta
	change := &StockChange{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProductID:      productID,
		ChangeType:     changeType,
		QuantityChange: delta,
		StockBefore:    before,
		StockAfter:     after,
		Reason:         reason,
	}
	if err := insertStockChange(ctx, tx, change); err != nil {
		return 0, 0, err
	}
	return before, after, nil
}

func insertStockChange(ctx context.Context, tx *sql.Tx, c *StockChange) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO stock_changes
		  (id, tenant_id, product_id, change_type, quantity_change, stock_before, stock_after, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.TenantID, c.ProductID, c.ChangeType, c.QuantityChange,
		c.StockBefore, c.StockAfter, c.Reason)
	return err
}

func (r *postgresRepo) ListStockChanges(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]*StockChange, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, product_id, change_type, quantity_change, stock_before, stock_after, reason, created_at
		FROM stock_changes
		WHERE tenant_id = $1 AND product_id = $2
		ORDER BY created_at DESC LIMIT $3`,
		tenantID, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var changes []*StockChange
	for rows.Next() {
		c := &StockChange{}
		if err := rows.Scan(&c.ID, &c.TenantID, &c.ProductID, &c.ChangeType,
			&c.QuantityChange, &c.StockBefore, &c.StockAfter, &c.Reason, &c.CreatedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Category,
		&p.Price, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
