package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lfarroc/billarpro-backend/internal/modules/session"
)

// Service renders session figures for owners. It adds no computation of
// its own beyond formatting and the revenue-change percentage; all numbers
// come from the session module.
type Service interface {
	History(ctx context.Context, tenantID uuid.UUID, limit int) ([]*SessionReport, error)
	ExportCSV(ctx context.Context, tenantID uuid.UUID, sessionID string, w io.Writer) error
}

type service struct {
	sessions session.Service
}

// NewService creates a new report service.
func NewService(sessions session.Service) Service {
	return &service{sessions: sessions}
}

func (s *service) History(ctx context.Context, tenantID uuid.UUID, limit int) ([]*SessionReport, error) {
	closed, err := s.sessions.ListClosed(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}

	reports := make([]*SessionReport, 0, len(closed))
	for _, sess := range closed {
		sum, err := s.sessions.Summarize(ctx, tenantID, sess.ID.String(), nil)
		if err != nil {
			return nil, err
		}
		reports = append(reports, &SessionReport{Session: sess, Summary: sum})
	}

	// closed is ordered newest first; each report compares against the
	// chronologically previous session.
	for i := 0; i+1 < len(reports); i++ {
		prev := reports[i+1].Summary.TotalRevenue
		if prev > 0 {
			pct := (reports[i].Summary.TotalRevenue - prev) / prev * 100
			reports[i].RevenueChangePct = &pct
		}
	}
	return reports, nil
}

func (s *service) ExportCSV(ctx context.Context, tenantID uuid.UUID, sessionID string, w io.Writer) error {
	sum, err := s.sessions.Summarize(ctx, tenantID, sessionID, nil)
	if err != nil {
		return err
	}
	rows, err := s.sessions.Reconcile(ctx, tenantID, sessionID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	records := [][]string{
		{"Resumen de sesión", sum.SessionName},
		{"Inicio", sum.StartTime.Format(time.RFC3339)},
		{"Observado", sum.ObservedAt.Format(time.RFC3339)},
		{"Duración", sum.Duration},
		{"Ingresos por ventas", money(sum.TotalSalesRevenue)},
		{"Ingresos por alquileres", money(sum.TotalRentalsRevenue)},
		{"Ingresos totales", money(sum.TotalRevenue)},
		{"Ventas", strconv.Itoa(sum.SalesCount)},
		{"Productos vendidos", strconv.Itoa(sum.ProductsSold)},
		{"Alquileres completados", strconv.Itoa(sum.RentalsCompleted)},
		{"Venta promedio", money(sum.AverageSale)},
		{"Ingresos por hora", money(sum.RevenuePerHour)},
		{},
		{"Producto", "Stock inicial", "Vendido", "Esperado", "Actual", "Diferencia", "Estado"},
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	for _, row := range rows {
		rec := []string{
			row.ProductName,
			strconv.Itoa(row.InitialStock),
			strconv.Itoa(row.Sold),
			strconv.Itoa(row.ExpectedStock),
			strconv.Itoa(row.CurrentStock),
			strconv.Itoa(row.Difference),
			row.Status,
		}
		if row.Estimated {
			rec[6] += " (estimado)"
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// money formats amounts with two decimals for display only; stored values
// keep full precision.
func money(v float64) string { return fmt.Sprintf("%.2f", v) }
