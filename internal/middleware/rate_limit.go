package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/baharkarakas/ong-backend/internal/api/httpx"
	"github.com/baharkarakas/ong-backend/internal/apperr"
)

// newLimiter refills rps tokens per second with a burst of rps.
func newLimiter(rps int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(rps), rps)
}

// RateLimit is a single process-wide token bucket refilled at rps per second.
// rps <= 0 disables it.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	lim := newLimiter(rps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				httpx.WriteError(w, r, apperr.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
