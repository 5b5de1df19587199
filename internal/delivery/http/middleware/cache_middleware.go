package middleware

import (
	"net/http"

	"doctor-directory/internal/service"
)

// InvalidateHomeCache drops the cached home view after every successful
// write that passes through it.
func InvalidateHomeCache(cache service.HomeCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if isWrite(r.Method) && rec.status < http.StatusBadRequest {
				// Failures are logged by the cache; the TTL bounds staleness
				_ = cache.Invalidate(r.Context())
			}
		})
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
