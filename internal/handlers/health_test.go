package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeHealthChecker struct {
	err error
}

func (f *fakeHealthChecker) Health(ctx context.Context) error {
	return f.err
}

func TestHealthHandler_Health_AllHealthy(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{}, &fakeHealthChecker{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Fatalf("expected healthy status, got %q", resp.Status)
	}
	if resp.Checks["postgres"] != "healthy" || resp.Checks["redis"] != "healthy" {
		t.Fatalf("unexpected checks: %v", resp.Checks)
	}
}

func TestHealthHandler_Health_RedisDown(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{}, &fakeHealthChecker{err: errors.New("connection refused")})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.Health(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Fatalf("expected unhealthy status, got %q", resp.Status)
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{}, &fakeHealthChecker{})
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr := httptest.NewRecorder()

	handler.Ready(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
}

func TestHealthHandler_Ready_DatabaseDown(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{err: errors.New("down")}, &fakeHealthChecker{})
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr := httptest.NewRecorder()

	handler.Ready(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
}

func TestHealthHandler_Live(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{err: errors.New("down")}, &fakeHealthChecker{err: errors.New("down")})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rr := httptest.NewRecorder()

	handler.Live(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected liveness to ignore dependency health, got %d", rr.Code)
	}
}
