package middleware

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds every request's context by timeout. It writes nothing
// itself; handlers see the expired context through their store calls and
// report the failure with their usual error mapping (503).
func Deadline(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
