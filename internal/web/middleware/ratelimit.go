package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/czcorpus/kwic/internal/web/ratelimit"
)

// RateLimit rejects requests exceeding limiter's per-client budget with a
// 429, keyed by the caller's IP (the teacher's default
// RateLimitKeyFunc/IPKeyFunc).
func RateLimit(limiter ratelimit.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			info, err := limiter.Allow(r.Context(), key)
			if err != nil {
				// Fail open: an unavailable limiter shouldn't take down search.
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			if !info.Allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "rate_limited",
					"message": "too many search requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
