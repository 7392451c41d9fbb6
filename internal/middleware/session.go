// AngelaMos | 2026
// session.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/carterperez-dev/scentpath/internal/core"
)

// SessionValidator resolves a session cookie value to a user ID.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

func SessionAuth(
	cookieName string,
	sessions SessionValidator,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				core.JSONError(w, core.UnauthorizedError("missing session"))
				return
			}

			userID, err := sessions.Validate(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, core.ErrUnauthorized) {
					core.JSONError(
						w,
						core.UnauthorizedError("invalid or expired session"),
					)
					return
				}
				core.InternalServerError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
