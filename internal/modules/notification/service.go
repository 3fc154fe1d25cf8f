package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines notification business logic. It also satisfies the
// session module's Notifier interface so lifecycle events surface as
// in-app notices.
type Service interface {
	Notify(ctx context.Context, tenantID uuid.UUID, title, body string)
	ListForUser(ctx context.Context, tenantID, userID uuid.UUID, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, tenantID, userID uuid.UUID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// Notify writes a tenant-wide notice. Failures are logged, not returned;
// a lost notice must never fail the operation that produced it.
func (s *service) Notify(ctx context.Context, tenantID uuid.UUID, title, body string) {
	n := &Notification{
		ID:       uuid.New(),
		TenantID: tenantID,
		Title:    title,
		Body:     body,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("notification write failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("title", title),
			zap.Error(err))
	}
}

func (s *service) ListForUser(ctx context.Context, tenantID, userID uuid.UUID, unreadOnly bool) ([]*Notification, error) {
	return s.repo.ListForUser(ctx, tenantID, userID, unreadOnly)
}

func (s *service) MarkRead(ctx context.Context, tenantID, userID uuid.UUID, id string) error {
	return s.repo.MarkRead(ctx, tenantID, userID, id)
}
