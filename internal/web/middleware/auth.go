package middleware

import (
	"net/http"
	"strings"

	"github.com/czcorpus/kwic/internal/web/auth"
)

// Auth requires a valid `Authorization: Bearer <token>` header, verified
// by svc, before a request reaches the search handler.
func Auth(svc *auth.Service) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				http.Error(w, "authorization required", http.StatusUnauthorized)
				return
			}
			if _, err := svc.ValidateToken(parts[1]); err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
