package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/baharkarakas/ong-backend/internal/api/httpx"
)

const requestIDHeader = "X-Request-Id"

func RequestIDFrom(ctx context.Context) string { return httpx.RequestID(ctx) }

// RequestID reuses a caller supplied X-Request-Id when it is a uuid.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(httpx.WithRequestID(r.Context(), id)))
	})
}
