package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL notification repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, n *Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, tenant_id, user_id, title, body, is_read)
		VALUES ($1, $2, $3, $4, $5, FALSE)`,
		n.ID, n.TenantID, n.UserID, n.Title, n.Body)
	return err
}

func (r *postgresRepo) ListForUser(ctx context.Context, tenantID, userID uuid.UUID, unreadOnly bool) ([]*Notification, error) {
	query := `
		SELECT id, tenant_id, user_id, title, body, is_read, created_at
		FROM notifications
		WHERE tenant_id = $1 AND (user_id IS NULL OR user_id = $2)`
	if unreadOnly {
		query += ` AND NOT is_read`
	}
	query += ` ORDER BY is_read, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []*Notification
	for rows.Next() {
		n := &Notification{}
		var uid sql.NullString
		if err := rows.Scan(&n.ID, &n.TenantID, &uid, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if uid.Valid {
			if parsed, err := uuid.Parse(uid.String); err == nil {
				n.UserID = &parsed
			}
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (r *postgresRepo) MarkRead(ctx context.Context, tenantID, userID uuid.UUID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND tenant_id = $2 AND (user_id = $3 OR user_id IS NULL)`,
		id, tenantID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}
