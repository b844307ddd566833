package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_Handler(t *testing.T) {
	l := NewRateLimiter(2, time.Minute)
	defer l.Close()

	handler := l.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/reload", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do("192.0.2.1:1234"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	rec := do("192.0.2.1:5678")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}

	if rec := do("192.0.2.2:1234"); rec.Code != http.StatusOK {
		t.Errorf("other client: Status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(1, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("a") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("a") {
		t.Fatal("second request in window should be denied")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("a") {
		t.Error("request after window should be allowed")
	}

	now = now.Add(2 * time.Minute)
	l.cleanup()
	if len(l.requests) != 0 {
		t.Errorf("requests after cleanup = %d, want 0", len(l.requests))
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	l := NewRateLimiter(0, time.Minute)
	handler := l.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("POST", "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", rec.Code, http.StatusOK)
		}
	}
}
