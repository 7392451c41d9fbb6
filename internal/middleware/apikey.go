// AngelaMos | 2026
// apikey.go

package middleware

import (
	"net/http"

	"github.com/carterperez-dev/scentpath/internal/core"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAPIKey gates the operational surface behind a static key. With no
// key configured the surface is closed entirely.
func RequireAPIKey(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(adminKeyHeader)
			if presented == "" {
				core.JSONError(w, core.UnauthorizedError("missing API key"))
				return
			}

			if !core.CompareAPIKey(presented, expected) {
				core.JSONError(w, core.ForbiddenError("invalid API key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
