package rental

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL rental repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) StartAndOccupy(ctx context.Context, rental *Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Guarded flip: only succeeds while the table is still free.
	res, err := tx.ExecContext(ctx, `
		UPDATE billiard_tables SET is_available = FALSE, updated_at = $1
		WHERE id = $2 AND tenant_id = $3 AND is_available`,
		time.Now(), rental.TableID, rental.TenantID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("table is not available")
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO rentals (id, tenant_id, table_id, client_id, worker_id, start_time, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rental.ID, rental.TenantID, rental.TableID, rental.ClientID,
		rental.WorkerID, rental.StartTime, rental.IsPaid); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanRental(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, table_id, client_id, worker_id, start_time, end_time,
		       total_amount, is_paid, created_at, updated_at
		FROM rentals WHERE id = $1 AND tenant_id = $2`, parsedID, tenantID))
}

func (r *postgresRepo) GetWithRate(ctx context.Context, tenantID uuid.UUID, id string) (*Rental, float64, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, 0, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT r.id, r.tenant_id, r.table_id, r.client_id, r.worker_id, r.start_time,
		       r.end_time, r.total_amount, r.is_paid, r.created_at, r.updated_at,
		       t.hourly_rate
		FROM rentals r
		JOIN billiard_tables t ON t.id = r.table_id
		WHERE r.id = $1 AND r.tenant_id = $2`, parsedID, tenantID)

	rental := &Rental{}
	var clientID, workerID sql.NullString
	var endTime sql.NullTime
	var totalAmount sql.NullFloat64
	var rate float64
	err = row.Scan(&rental.ID, &rental.TenantID, &rental.TableID, &clientID, &workerID,
		&rental.StartTime, &endTime, &totalAmount, &rental.IsPaid,
		&rental.CreatedAt, &rental.UpdatedAt, &rate)
	if err != nil {
		return nil, 0, err
	}
	fillNullable(rental, clientID, workerID, endTime, totalAmount)
	return rental, rate, nil
}

func (r *postgresRepo) CloseAndRelease(ctx context.Context, tenantID, rentalID uuid.UUID, end time.Time, amount float64, isPaid bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var tableID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		UPDATE rentals
		SET end_time = $1, total_amount = $2, is_paid = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6 AND end_time IS NULL
		RETURNING table_id`,
		end, amount, isPaid, time.Now(), rentalID, tenantID).Scan(&tableID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("rental is already closed")
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE billiard_tables SET is_available = TRUE, updated_at = $1
		WHERE id = $2 AND tenant_id = $3`,
		time.Now(), tableID, tenantID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepo) SetPaid(ctx context.Context, tenantID uuid.UUID, id string, paid bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rentals SET is_paid = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4`,
		paid, time.Now(), id, tenantID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("rental not found")
	}
	return nil
}

func (r *postgresRepo) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*ActiveRental, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.tenant_id, r.table_id, r.client_id, r.worker_id, r.start_time,
		       r.end_time, r.total_amount, r.is_paid, r.created_at, r.updated_at,
		       t.name, t.hourly_rate
		FROM rentals r
		JOIN billiard_tables t ON t.id = r.table_id
		WHERE r.tenant_id = $1 AND r.end_time IS NULL
		ORDER BY r.start_time`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var active []*ActiveRental
	for rows.Next() {
		a := &ActiveRental{}
		var clientID, workerID sql.NullString
		var endTime sql.NullTime
		var totalAmount sql.NullFloat64
		if err := rows.Scan(&a.ID, &a.TenantID, &a.TableID, &clientID, &workerID,
			&a.StartTime, &endTime, &totalAmount, &a.IsPaid,
			&a.CreatedAt, &a.UpdatedAt, &a.TableName, &a.HourlyRate); err != nil {
			return nil, err
		}
		fillNullable(&a.Rental, clientID, workerID, endTime, totalAmount)
		active = append(active, a)
	}
	return active, rows.Err()
}

func (r *postgresRepo) ListClosedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Rental, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, table_id, client_id, worker_id, start_time, end_time,
		       total_amount, is_paid, created_at, updated_at
		FROM rentals
		WHERE tenant_id = $1 AND end_time >= $2 AND end_time < $3
		ORDER BY end_time`, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []*Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanRental(row rowScanner) (*Rental, error) {
	rental := &Rental{}
	var clientID, workerID sql.NullString
	var endTime sql.NullTime
	var totalAmount sql.NullFloat64
	err := row.Scan(&rental.ID, &rental.TenantID, &rental.TableID, &clientID, &workerID,
		&rental.StartTime, &endTime, &totalAmount, &rental.IsPaid,
		&rental.CreatedAt, &rental.UpdatedAt)
	if err != nil {
		return nil, err
	}
	fillNullable(rental, clientID, workerID, endTime, totalAmount)
	return rental, nil
}

func fillNullable(rental *Rental, clientID, workerID sql.NullString, endTime sql.NullTime, totalAmount sql.NullFloat64) {
	if clientID.Valid {
		if cid, err := uuid.Parse(clientID.String); err == nil {
			rental.ClientID = &cid
		}
	}
	if workerID.Valid {
		if wid, err := uuid.Parse(workerID.String); err == nil {
			rental.WorkerID = &wid
		}
	}
	if endTime.Valid {
		t := endTime.Time
		rental.EndTime = &t
	}
	if totalAmount.Valid {
		amt := totalAmount.Float64
		rental.TotalAmount = &amt
	}
}
