package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/oops"

	"github.com/baharkarakas/ong-backend/internal/apperr"
)

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	Message   string    `json:"message"`
}

type reqIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey{}).(string)
	return id
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err in the error envelope and logs it. Errors that are
// not domain errors become a 500 with a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e, known := apperr.As(err)

	attrs := []any{
		"method", r.Method,
		"path", r.URL.RequestURI(),
		"status", e.Status,
		"request_id", RequestID(r.Context()),
		"err", err.Error(),
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs = append(attrs, "code", oopsErr.Code(), "context", oopsErr.Context())
	}
	switch {
	case !known || e.Status >= http.StatusInternalServerError:
		slog.ErrorContext(r.Context(), "request failed", attrs...)
	default:
		slog.WarnContext(r.Context(), "request rejected", attrs...)
	}

	WriteJSON(w, e.Status, ErrorBody{
		Status:    e.Status,
		Timestamp: time.Now().UTC(),
		Path:      r.URL.RequestURI(),
		Method:    r.Method,
		Message:   e.Message,
	})
}
