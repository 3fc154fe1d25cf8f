package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app notice for a tenant's users. UserID is nil for
// tenant-wide notices.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}
