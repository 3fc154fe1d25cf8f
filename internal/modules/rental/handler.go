package rental

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes rental HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/rentals", func(r chi.Router) {
		r.Post("/", h.start)               // POST  /api/v1/rentals
		r.Get("/", h.list)                 // GET   /api/v1/rentals?from=...&to=...
		r.Get("/active", h.listActive)     // GET   /api/v1/rentals/active
		r.Get("/{id}", h.get)              // GET   /api/v1/rentals/{id}
		r.Patch("/{id}/close", h.close)    // PATCH /api/v1/rentals/{id}/close
		r.Patch("/{id}/pay", h.markPaid)   // PATCH /api/v1/rentals/{id}/pay
	})
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok || id.TenantID == nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req StartRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rental, err := h.service.StartRental(r.Context(), *id.TenantID, id.UserID, req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
			code = http.StatusBadRequest
		} else if strings.Contains(msg, "not available") {
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, rental)
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req CloseRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rental, err := h.service.CloseRental(r.Context(), tenantID, chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(msg, "already closed") {
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, rental)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	rental, err := h.service.MarkPaid(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rental)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	rental, err := h.service.GetRental(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rental)
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	active, err := h.service.ListActive(r.Context(), tenantID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, active)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	from, to, err := parseWindow(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rentals, err := h.service.ListClosedBetween(r.Context(), tenantID, from, to)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rentals)
}

// parseWindow reads the from/to query params, defaulting to the last 24h.
func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.Add(-24 * time.Hour)
	to := now
	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return from, to, err
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
