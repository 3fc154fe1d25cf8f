package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, tenant_id, username, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.TenantID, u.Username, u.PasswordHash, u.FullName, u.Role, u.IsActive)
	return err
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, username, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users WHERE id = $1`, parsedID))
}

func (r *postgresRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, username, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users WHERE username = $1`, username))
}

func (r *postgresRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, username, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []*User
	for rows.Next() {
		u, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id string, role Role) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`, role, time.Now(), id)
	return err
}

func (r *postgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`, active, time.Now(), id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepository) scan(row rowScanner) (*User, error) {
	u := &User{}
	var tenantID sql.NullString
	err := row.Scan(&u.ID, &tenantID, &u.Username, &u.PasswordHash,
		&u.FullName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tenantID.Valid {
		tid, err := uuid.Parse(tenantID.String)
		if err != nil {
			return nil, err
		}
		u.TenantID = &tid
	}
	return u, nil
}
