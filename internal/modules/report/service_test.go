package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarroc/billarpro-backend/internal/modules/session"
)

type fakeSessionService struct {
	closed    []*session.DailySession
	summaries map[uuid.UUID]*session.Summary
	recon     []session.ProductReconciliation
}

func (f *fakeSessionService) GetActive(ctx context.Context, tenantID uuid.UUID) (*session.DailySession, error) {
	return nil, nil
}

func (f *fakeSessionService) Start(ctx context.Context, tenantID, openedBy uuid.UUID, req session.StartSessionRequest) (*session.DailySession, error) {
	return nil, nil
}

func (f *fakeSessionService) End(ctx context.Context, tenantID uuid.UUID, sessionID string) (*session.CloseResult, error) {
	return nil, nil
}

func (f *fakeSessionService) GetSession(ctx context.Context, tenantID uuid.UUID, sessionID string) (*session.DailySession, error) {
	return nil, nil
}

func (f *fakeSessionService) ListClosed(ctx context.Context, tenantID uuid.UUID, limit int) ([]*session.DailySession, error) {
	return f.closed, nil
}

func (f *fakeSessionService) Summarize(ctx context.Context, tenantID uuid.UUID, sessionID string, workerID *uuid.UUID) (*session.Summary, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, err
	}
	return f.summaries[id], nil
}

func (f *fakeSessionService) Reconcile(ctx context.Context, tenantID uuid.UUID, sessionID string) ([]session.ProductReconciliation, error) {
	return f.recon, nil
}

func closedSession(name string, start time.Time, hours int) *session.DailySession {
	end := start.Add(time.Duration(hours) * time.Hour)
	return &session.DailySession{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		Name:      name,
		StartTime: start,
		EndTime:   &end,
	}
}

func summaryFor(s *session.DailySession, revenue float64) *session.Summary {
	return &session.Summary{
		SessionID:    s.ID,
		SessionName:  s.Name,
		StartTime:    s.StartTime,
		ObservedAt:   *s.EndTime,
		TotalRevenue: revenue,
		Duration:     "4h 0m",
	}
}

func TestHistoryRevenueChange(t *testing.T) {
	day := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	older := closedSession("Lunes", day, 4)
	newer := closedSession("Martes", day.Add(24*time.Hour), 4)

	fake := &fakeSessionService{
		// Newest first, matching the listing order.
		closed: []*session.DailySession{newer, older},
		summaries: map[uuid.UUID]*session.Summary{
			newer.ID: summaryFor(newer, 150.0),
			older.ID: summaryFor(older, 100.0),
		},
	}
	svc := NewService(fake)

	reports, err := svc.History(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	require.NotNil(t, reports[0].RevenueChangePct)
	assert.InDelta(t, 50.0, *reports[0].RevenueChangePct, 1e-9)

	// The oldest session has nothing to compare against.
	assert.Nil(t, reports[1].RevenueChangePct)
}

func TestHistoryZeroPreviousRevenue(t *testing.T) {
	day := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	older := closedSession("Lunes", day, 4)
	newer := closedSession("Martes", day.Add(24*time.Hour), 4)

	fake := &fakeSessionService{
		closed: []*session.DailySession{newer, older},
		summaries: map[uuid.UUID]*session.Summary{
			newer.ID: summaryFor(newer, 90.0),
			older.ID: summaryFor(older, 0.0),
		},
	}
	svc := NewService(fake)

	reports, err := svc.History(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Nil(t, reports[0].RevenueChangePct, "a zero-revenue baseline yields no percentage")
}

func TestExportCSV(t *testing.T) {
	day := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	sess := closedSession("Turno noche", day, 4)

	fake := &fakeSessionService{
		summaries: map[uuid.UUID]*session.Summary{sess.ID: summaryFor(sess, 200.0)},
		recon: []session.ProductReconciliation{
			{ProductID: uuid.New(), ProductName: "Cerveza", InitialStock: 10, Sold: 4, ExpectedStock: 6, CurrentStock: 5, Difference: -1, Status: session.StatusShortage},
		},
	}
	svc := NewService(fake)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), uuid.New(), sess.ID.String(), &buf))

	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Resumen de sesión", "Turno noche"}, records[0])

	last := records[len(records)-1]
	assert.Equal(t, []string{"Cerveza", "10", "4", "6", "5", "-1", "Faltante"}, last)
}
