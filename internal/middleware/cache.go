package middleware

import (
	"net/http"
	"strings"
)

// CacheControl keeps authenticated API responses out of shared caches.
type CacheControl struct{}

func NewCacheControl() *CacheControl {
	return &CacheControl{}
}

// Apply sets cache headers based on the request path. Everything under
// /api/ carries user-specific data, including secrets, and must never be
// cached. Health endpoints are cheap enough to always recompute.
func (c *CacheControl) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		switch {
		case strings.HasPrefix(path, "/api/"):
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
			w.Header().Set("Pragma", "no-cache")

		case strings.HasPrefix(path, "/health"):
			w.Header().Set("Cache-Control", "no-store")

		default:
			w.Header().Set("Cache-Control", "no-cache, must-revalidate")
		}

		next.ServeHTTP(w, r)
	})
}
