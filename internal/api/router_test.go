package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewRouter(t *testing.T) {
	router := NewRouter(RouterConfig{Checker: &mockChecker{}, CheckTimeout: 30 * time.Second})

	if router == nil {
		t.Fatal("expected router to be created")
	}
}

func TestPingEndpoint(t *testing.T) {
	handler := NewRouter(RouterConfig{Checker: &mockChecker{}})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for ping endpoint, got %d", w.Code)
	}

	if w.Body.String() != "." {
		t.Errorf("expected ping response '.', got %s", w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := NewRouter(RouterConfig{Checker: &mockChecker{}})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for health endpoint, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp.Status != "healthy" || resp.Service != "dkimcheck" {
		t.Fatalf("unexpected health response: %+v", resp)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := NewRouter(RouterConfig{Checker: &mockChecker{}})

	req := httptest.NewRequest(http.MethodGet, "/api/check", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405 for GET on check endpoint, got %d", w.Code)
	}
}
