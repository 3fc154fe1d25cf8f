package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	created   []*Notification
	createErr error

	markedTenant uuid.UUID
	markedUser   uuid.UUID
	markedID     string
}

func (f *fakeRepo) Create(ctx context.Context, n *Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeRepo) ListForUser(ctx context.Context, tenantID, userID uuid.UUID, unreadOnly bool) ([]*Notification, error) {
	return nil, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, tenantID, userID uuid.UUID, id string) error {
	f.markedTenant = tenantID
	f.markedUser = userID
	f.markedID = id
	return nil
}

func TestNotifyWritesTenantNotice(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zap.NewNop())
	tenantID := uuid.New()

	svc.Notify(context.Background(), tenantID, "Sesión iniciada", "La sesión del día ha comenzado")

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.Equal(t, tenantID, n.TenantID)
	assert.Equal(t, "Sesión iniciada", n.Title)
}

func TestNotifySwallowsRepositoryError(t *testing.T) {
	repo := &fakeRepo{createErr: fmt.Errorf("connection reset")}
	svc := NewService(repo, zap.NewNop())

	// Must not panic or surface the failure to the caller.
	svc.Notify(context.Background(), uuid.New(), "Sesión cerrada", "")
	assert.Empty(t, repo.created)
}

func TestMarkReadScopedToCaller(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zap.NewNop())
	tenantID := uuid.New()
	userID := uuid.New()
	noticeID := uuid.New().String()

	require.NoError(t, svc.MarkRead(context.Background(), tenantID, userID, noticeID))

	assert.Equal(t, tenantID, repo.markedTenant)
	assert.Equal(t, userID, repo.markedUser)
	assert.Equal(t, noticeID, repo.markedID)
}
