package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	"github.com/peppertree17/booking-service/pkg/authtoken"
)

type contextKey string

const identityKey contextKey = "identity"

const (
	msgMissingToken = "missing or malformed Authorization header"
	msgInvalidToken = "invalid token"
	msgStaffOnly    = "staff access required"
)

// TokenVerifier интерфейс верификатора bearer-токенов
type TokenVerifier interface {
	Verify(tokenString string) (*authtoken.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth проверяет bearer-токен и пускает дальше только персонал.
// Identity вызывающего кладется в контекст запроса.
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, msgMissingToken)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("%s %s - Token rejected: %v", r.Method, r.URL.Path, err)
				handlers.RespondError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			if identity.Role != authtoken.RoleStaff {
				logger.Warn("%s %s - Forbidden for role %q", r.Method, r.URL.Path, identity.Role)
				handlers.RespondError(w, http.StatusForbidden, msgStaffOnly)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext возвращает identity вызывающего, положенную Auth
func IdentityFromContext(ctx context.Context) (*authtoken.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*authtoken.Identity)
	return identity, ok
}
