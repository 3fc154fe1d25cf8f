package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListForUser(ctx context.Context, tenantID, userID uuid.UUID, unreadOnly bool) ([]*Notification, error)

	// MarkRead flips the read flag on one of the caller's notices: their own
	// personal rows, or a tenant-wide row. Tenant-wide notices carry a single
	// shared flag, so the first recipient to read one marks it for the whole
	// tenant.
	MarkRead(ctx context.Context, tenantID, userID uuid.UUID, id string) error
}
