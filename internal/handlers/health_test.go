package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func doRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthOK(t *testing.T) {
	_, r := setupTest(t)
	req, _ := http.NewRequest("GET", "/health", nil)
	w := doRequest(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestHealthDBDown(t *testing.T) {
	env, r := setupTest(t)
	sqlDB, _ := env.DB.DB()
	sqlDB.Close()
	req, _ := http.NewRequest("GET", "/health", nil)
	w := doRequest(r, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	_, r := setupTest(t)

	req, _ := http.NewRequest("GET", "/", nil)
	w := doRequest(r, req)
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id")
	}

	req, _ = http.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = doRequest(r, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("request id %q", got)
	}
}
