package client

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes client HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/clients", func(r chi.Router) {
		r.Post("/", h.create)                // POST /api/v1/clients
		r.Get("/", h.list)                   // GET  /api/v1/clients
		r.Get("/{id}", h.get)                // GET  /api/v1/clients/{id}
		r.Put("/{id}", h.update)             // PUT  /api/v1/clients/{id}
		r.Get("/{id}/debt", h.getDebt)       // GET  /api/v1/clients/{id}/debt
		r.Post("/{id}/settle", h.settleDebt) // POST /api/v1/clients/{id}/settle
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.CreateClient(r.Context(), tenantID, req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	c, err := h.service.GetClient(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	clients, err := h.service.ListClients(r.Context(), tenantID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, clients)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.UpdateClient(r.Context(), tenantID, chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) getDebt(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	d, err := h.service.GetDebt(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) settleDebt(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	d, err := h.service.SettleDebt(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, d)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
