package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBurstThenRefill(t *testing.T) {
	current := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	rl := &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		rate:    1,
		burst:   2,
		now:     func() time.Time { return current },
	}

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("expected third immediate request to be rejected")
	}

	// A different client gets its own bucket.
	if !rl.Allow("10.0.0.2") {
		t.Fatal("expected separate bucket per IP")
	}

	current = current.Add(time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("expected a token after refill")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("expected only one token to have refilled")
	}
}

func TestRateLimitMiddlewareRejectsOverLimit(t *testing.T) {
	handler := RateLimit(0.001, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/intake/sessions", nil)
	req.Header.Set("X-Real-Ip", "203.0.113.7")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}
