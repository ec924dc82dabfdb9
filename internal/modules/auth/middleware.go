package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const customerIDKey contextKey = "customerID"

// CustomerID returns the authenticated customer id placed by RequireCustomer.
func CustomerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(customerIDKey).(uuid.UUID)
	return id, ok
}

// Middleware authenticates requests from bearer tokens.
type Middleware struct{ secret []byte }

func NewMiddleware(secret []byte) *Middleware { return &Middleware{secret: secret} }

// RequireCustomer rejects requests without a valid customer token and puts
// the customer id in the request context.
func (m *Middleware) RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.claims(r)
		if !ok || claims.UserID == "" {
			unauthorized(w)
			return
		}
		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), customerIDKey, id)))
	})
}

// RequireAdmin rejects requests without a valid admin token.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.claims(r)
		if !ok || claims.AdminID == "" {
			forbidden(w)
			return
		}
		if _, err := uuid.Parse(claims.AdminID); err != nil {
			forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) claims(r *http.Request) (*Claims, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), m.secret)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
}
