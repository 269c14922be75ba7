package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"cloudnote/token"
)

type contextKey int

const emailKey contextKey = 0

// WithEmail returns a context carrying the authenticated user's email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// EmailFromContext extracts the email placed by RequireAuth.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// RequireAuth verifies the bearer token on the Authorization header and
// injects the verified email into the request context. Every failure is a
// 401: a bad credential is a client fault, never a server one.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Unauthorized Access Request!")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[1] == "" {
				unauthorized(w, "Unauthorized Access Request!")
				return
			}

			email, err := tokens.Verify(parts[1])
			if err != nil {
				log.Printf("Auth Middleware - token rejected: %v", err)
				unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"data": msg})
}
