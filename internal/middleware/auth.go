package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Claims is the JWT payload issued at login and verified on every request.
type Claims struct {
	TenantID string `json:"tenant_id,omitempty"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// Identity is the authenticated caller, derived from the verified token.
// TenantID is nil only for super_admin accounts. Services must take the
// tenant from here, never from request payloads.
type Identity struct {
	UserID   uuid.UUID
	TenantID *uuid.UUID
	Role     string
}

type contextKey string

const identityKey contextKey = "identity"

// FromContext returns the authenticated identity injected by Auth.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity. Exposed for tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// TenantFrom returns the caller's tenant id. ok is false when the caller is
// unauthenticated or has no tenant (super_admin accounts).
func TenantFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := FromContext(ctx)
	if !ok || id.TenantID == nil {
		return uuid.Nil, false
	}
	return *id.TenantID, true
}

// Auth verifies the Bearer token and injects the caller's Identity.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				unauthorized(w, "invalid token subject")
				return
			}

			id := Identity{UserID: userID, Role: claims.Role}
			if claims.TenantID != "" {
				tid, err := uuid.Parse(claims.TenantID)
				if err != nil {
					unauthorized(w, "invalid token tenant")
					return
				}
				id.TenantID = &tid
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := FromContext(r.Context())
			if !ok {
				unauthorized(w, "not authenticated")
				return
			}
			if !allowed[id.Role] {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"error": "insufficient role"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
