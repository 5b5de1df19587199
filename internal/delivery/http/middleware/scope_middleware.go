package middleware

import (
	"net/http"

	"doctor-directory/pkg/jwt"
	"doctor-directory/pkg/response"
)

// RequireScope restricts access to tokens carrying the given scope.
// Must be used after Authenticate.
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := GetScopeFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if got != scope {
				response.Forbidden(w, "Access denied. Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a shorthand for RequireScope(jwt.ScopeAdmin)
func RequireAdmin(next http.Handler) http.Handler {
	return RequireScope(jwt.ScopeAdmin)(next)
}
