package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey int

const gateKey contextKey = iota

// WithGate stores the gate in ctx so handlers can report its state.
func WithGate(ctx context.Context, g *Gate) context.Context {
	return context.WithValue(ctx, gateKey, g)
}

func GateFromContext(ctx context.Context) (*Gate, bool) {
	g, ok := ctx.Value(gateKey).(*Gate)
	return g, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Inject puts the gate into every request context.
func (g *Gate) Inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithGate(r.Context(), g)))
	})
}

// Require rejects requests without a valid bearer token when the gate is
// enabled. A missing token is 401, a bad or expired one 403.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		token := BearerToken(r)
		if token == "" {
			deny(w, http.StatusUnauthorized, "Access token krävs")
			return
		}

		if _, err := g.Verify(token); err != nil {
			deny(w, http.StatusForbidden, "Ogiltig eller utgången token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":        message,
		"authRequired": true,
	})
}
