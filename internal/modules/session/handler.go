package session

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes session HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", h.start)                             // POST  /api/v1/sessions
		r.Get("/active", h.getActive)                    // GET   /api/v1/sessions/active
		r.Get("/", h.listClosed)                         // GET   /api/v1/sessions?limit=...
		r.Get("/{id}", h.get)                            // GET   /api/v1/sessions/{id}
		r.Patch("/{id}/end", h.end)                      // PATCH /api/v1/sessions/{id}/end
		r.Get("/{id}/summary", h.summary)                // GET   /api/v1/sessions/{id}/summary?worker_id=...
		r.Get("/{id}/reconciliation", h.reconciliation)  // GET   /api/v1/sessions/{id}/reconciliation
	})
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok || id.TenantID == nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req StartSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	sess, err := h.service.Start(r.Context(), *id.TenantID, id.UserID, req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "already active") {
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, sess)
}

func (h *Handler) getActive(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	sess, err := h.service.GetActive(r.Context(), tenantID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sess == nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	respond(w, http.StatusOK, sess)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	sess, err := h.service.GetSession(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sess)
}

func (h *Handler) listClosed(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sessions, err := h.service.ListClosed(r.Context(), tenantID, limit)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sessions)
}

func (h *Handler) end(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	result, err := h.service.End(r.Context(), tenantID, chi.URLParam(r, "id"))
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
	respond(w, http.StatusOK, result)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var workerID *uuid.UUID
	if raw := r.URL.Query().Get("worker_id"); raw != "" {
		wid, err := uuid.Parse(raw)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid worker_id"})
			return
		}
		workerID = &wid
	}
	sum, err := h.service.Summarize(r.Context(), tenantID, chi.URLParam(r, "id"), workerID)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sum)
}

func (h *Handler) reconciliation(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	rows, err := h.service.Reconcile(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rows)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
