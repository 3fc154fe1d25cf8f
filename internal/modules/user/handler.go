package user

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes user HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.With(middleware.RequireRoles(string(RoleSuperAdmin), string(RoleAdmin))).
			Post("/", h.register) // POST   /api/v1/users
		r.Get("/", h.listTenantUsers) // GET    /api/v1/users
		r.Get("/{id}", h.getUser)     // GET    /api/v1/users/{id}
		r.With(middleware.RequireRoles(string(RoleSuperAdmin), string(RoleAdmin))).
			Patch("/{id}/role", h.changeRole) // PATCH  /api/v1/users/{id}/role
		r.With(middleware.RequireRoles(string(RoleSuperAdmin), string(RoleAdmin))).
			Delete("/{id}", h.deactivate) // DELETE /api/v1/users/{id}
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Admins may only create accounts inside their own tenant.
	if id, ok := middleware.FromContext(r.Context()); ok && id.Role == string(RoleAdmin) {
		if id.TenantID == nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "admin account has no tenant"})
			return
		}
		req.TenantID = id.TenantID.String()
		if req.Role == string(RoleSuperAdmin) {
			respond(w, http.StatusForbidden, map[string]string{"error": "admins cannot create super_admin accounts"})
			return
		}
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "already taken") {
			code = http.StatusConflict
		} else if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, u)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}
	u, err := h.service.GetUser(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) listTenantUsers(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	users, err := h.service.ListTenantUsers(r.Context(), tenantID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, users)
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	u, err := h.service.ChangeRole(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(msg, "only a super_admin") {
			code = http.StatusForbidden
		} else if strings.Contains(msg, "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}
	if err := h.service.Deactivate(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
