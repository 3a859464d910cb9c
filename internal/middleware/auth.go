package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"photoshare/internal/auth"
	"photoshare/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth extracts and verifies the bearer token. Missing tokens and
// every verification failure produce the same generic unauthenticated
// response; the failure kind is not leaked to the client.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeUnauthenticated(w)
			return
		}

		claims, err := m.verifier.Verify(strings.TrimSpace(header[7:]))
		if err != nil {
			writeUnauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*auth.Claims)
	return claims, ok
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: "missing or invalid token",
		},
	})
}
