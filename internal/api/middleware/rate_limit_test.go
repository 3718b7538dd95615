package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"labelr/internal/platform/config"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RenderPerMinute: 3, APIReadPerMinute: 100})

	for i := 0; i < 3; i++ {
		if !rl.Allow("client:render", 3) {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	if rl.Allow("client:render", 3) {
		t.Error("Request over the limit should be denied")
	}

	// A different key has its own bucket
	if !rl.Allow("other:render", 3) {
		t.Error("Different client should be allowed")
	}
}

func TestRateLimiter_LimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RenderPerMinute: 1, APIReadPerMinute: 100})

	called := 0
	handler := rl.Limit("render")(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/api/v1/pages/pdf", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("First request: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Second request: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Expected Retry-After header, got %q", rec.Header().Get("Retry-After"))
	}

	if called != 1 {
		t.Errorf("Handler should have run once, ran %d times", called)
	}
}

func TestRateLimiter_UnknownLimitTypeDefaults(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{})

	handler := rl.Limit("unknown")(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/v1/presets", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 with default limit, got %d", rec.Code)
	}
}
