package tenant

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes tenant HTTP endpoints. Creation and listing are reserved
// for super_admin; a tenant's own admin may view and edit it.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/tenants", func(r chi.Router) {
		r.With(middleware.RequireRoles("super_admin")).Post("/", h.create)       // POST   /api/v1/tenants
		r.With(middleware.RequireRoles("super_admin")).Get("/", h.list)          // GET    /api/v1/tenants
		r.Get("/{id}", h.get)                                                    // GET    /api/v1/tenants/{id}
		r.With(middleware.RequireRoles("super_admin", "admin")).Put("/{id}", h.update) // PUT /api/v1/tenants/{id}
		r.With(middleware.RequireRoles("super_admin")).Delete("/{id}", h.deactivate)   // DELETE /api/v1/tenants/{id}
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.CreateTenant(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, t)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !callerMayAccess(r, id) {
		respond(w, http.StatusForbidden, map[string]string{"error": "tenant mismatch"})
		return
	}
	t, err := h.service.GetTenant(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.service.ListTenants(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, tenants)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !callerMayAccess(r, id) {
		respond(w, http.StatusForbidden, map[string]string{"error": "tenant mismatch"})
		return
	}
	var req UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.UpdateTenant(r.Context(), id, req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivateTenant(r.Context(), chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// callerMayAccess limits non-super_admin callers to their own tenant.
func callerMayAccess(r *http.Request, tenantID string) bool {
	id, ok := middleware.FromContext(r.Context())
	if !ok {
		return false
	}
	if id.Role == "super_admin" {
		return true
	}
	return id.TenantID != nil && id.TenantID.String() == tenantID
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
