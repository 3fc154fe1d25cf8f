package product

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
)

// Handler exposes product HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.create)    // POST  /api/v1/products
		r.Get("/", h.list)       // GET   /api/v1/products?active=true
		r.Get("/{id}", h.get)    // GET   /api/v1/products/{id}
		r.Put("/{id}", h.update) // PUT   /api/v1/products/{id}
		r.With(middleware.RequireRoles("super_admin", "admin")).
			Delete("/{id}", h.deactivate) // DELETE /api/v1/products/{id}
		r.Post("/{id}/stock", h.adjustStock)      // POST  /api/v1/products/{id}/stock
		r.Get("/{id}/stock/changes", h.listStock) // GET   /api/v1/products/{id}/stock/changes
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.CreateProduct(r.Context(), tenantID, req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "cannot be") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	p, err := h.service.GetProduct(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"
	products, err := h.service.ListProducts(r.Context(), tenantID, activeOnly)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), tenantID, chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(msg, "cannot be") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	if err := h.service.DeactivateProduct(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.AdjustStock(r.Context(), tenantID, chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(msg, "insufficient stock") || strings.Contains(msg, "cannot be") {
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listStock(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFrom(r.Context())
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "caller has no tenant"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	changes, err := h.service.ListStockChanges(r.Context(), tenantID, chi.URLParam(r, "id"), limit)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, changes)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
