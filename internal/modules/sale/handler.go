package sale

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes sale HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Post("/", h.create)                         // POST /api/v1/sales
		r.Get("/", h.list)                            // GET  /api/v1/sales?from=...&to=...
		r.Get("/{id}", h.get)                         // GET  /api/v1/sales/{id}
		r.Put("/{id}/pay", h.markPaid)                // PUT  /api/v1/sales/{id}/pay
		r.Get("/rental/{rental_id}", h.listByRental)  // GET  /api/v1/sales/rental/{rental_id}
		r.Get("/client/{client_id}", h.listByClient)  // GET  /api/v1/sales/client/{client_id}?unpaid=true
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok || id.TenantID == nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sale, err := h.service.CreateSale(r.Context(), *id.TenantID, id.UserID, req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		switch {
		case strings.Contains(msg, "not found"):
			code = http.StatusNotFound
		case strings.Contains(msg, "required") || strings.Contains(msg, "invalid") || strings.Contains(msg, "must be"):
			code = http.StatusBadRequest
		case strings.Contains(msg, "insufficient stock") || strings.Contains(msg, "does not permit") || strings.Contains(msg, "inactive") || strings.Contains(msg, "requires a client"):
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, sale)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	sale, err := h.service.GetSale(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sale)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	sale, err := h.service.MarkPaid(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sale)
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
	sales, err := h.service.ListBetween(r.Context(), tenantID, from, to)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sales)
}

func (h *Handler) listByRental(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	sales, err := h.service.ListByRental(r.Context(), tenantID, chi.URLParam(r, "rental_id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sales)
}

func (h *Handler) listByClient(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	unpaidOnly := r.URL.Query().Get("unpaid") == "true"
	sales, err := h.service.ListByClient(r.Context(), tenantID, chi.URLParam(r, "client_id"), unpaidOnly)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sales)
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
