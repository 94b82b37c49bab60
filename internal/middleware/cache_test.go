package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCacheControl_APIPaths(t *testing.T) {
	cc := NewCacheControl()
	handler := cc.Apply(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/secret", nil))

	if got := rr.Header().Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Fatalf("API responses must not be cacheable, got %q", got)
	}
}

func TestCacheControl_HealthPaths(t *testing.T) {
	cc := NewCacheControl()
	handler := cc.Apply(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store for health endpoints, got %q", got)
	}
}
