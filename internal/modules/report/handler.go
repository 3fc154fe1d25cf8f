package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes reporting endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/sessions", h.history)                 // GET /api/v1/reports/sessions?limit=...
		r.Get("/sessions/{id}/export", h.exportCSV)   // GET /api/v1/reports/sessions/{id}/export
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	reports, err := h.service.History(r.Context(), tenantID, limit)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, reports)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "session_"+id+".csv"))
	if err := h.service.ExportCSV(r.Context(), tenantID, id, w); err != nil {
		// Header already sent on partial writes; best effort status otherwise.
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
