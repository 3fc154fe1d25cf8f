package notification

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes notification HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/notifications", func(r chi.Router) {
		r.Get("/", h.list)                 // GET  /api/v1/notifications?unread=true
		r.Post("/{id}/read", h.markRead)   // POST /api/v1/notifications/{id}/read
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok || id.TenantID == nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notices, err := h.service.ListForUser(r.Context(), *id.TenantID, id.UserID, unreadOnly)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, notices)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok || id.TenantID == nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	if err := h.service.MarkRead(r.Context(), *id.TenantID, id.UserID, chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "read"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
