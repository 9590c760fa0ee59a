package middleware

import (
	"net/http"
	"strings"

	"github.com/baharkarakas/ong-backend/internal/api/httpx"
	"github.com/baharkarakas/ong-backend/internal/apperr"
	"github.com/baharkarakas/ong-backend/internal/auth"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	TM TokenVerifier
}

func NewAuthMiddleware(tm TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Auth requires "Authorization: Bearer <jwt>" and stores the caller in the context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if len(ah) < len("Bearer ") || !strings.EqualFold(ah[:len("Bearer ")], "bearer ") {
			httpx.WriteError(w, r, apperr.ErrMissingToken)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])
		if token == "" {
			httpx.WriteError(w, r, apperr.ErrMissingToken)
			return
		}

		claims, err := m.TM.Verify(token)
		if err != nil {
			httpx.WriteError(w, r, apperr.ErrInvalidToken)
			return
		}
		ctx := WithUser(r.Context(), UserCtx{UserID: claims.UserID, Username: claims.Username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
