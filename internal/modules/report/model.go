package report

import "github.com/lfarroc/billarpro-backend/internal/modules/session"

// SessionReport pairs a closed session with its recomputed summary and the
// revenue change against the previous session.
type SessionReport struct {
	Session *session.DailySession `json:"session"`
	Summary *session.Summary      `json:"summary"`
	// RevenueChangePct is nil for the oldest session in the report or when
	// the previous session had zero revenue.
	RevenueChangePct *float64 `json:"revenue_change_pct,omitempty"`
}
