package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := New(60*time.Second, 100)
	l.SetNow(func() time.Time { return now })

	for i := 0; i < 100; i++ {
		ok, _ := l.Allow("1.2.3.4")
		if !ok {
			t.Fatalf("request %d unexpectedly rejected", i+1)
		}
	}

	ok, retryAfter := l.Allow("1.2.3.4")
	if ok {
		t.Fatal("request 101 should be rejected")
	}
	if retryAfter <= 0 {
		t.Errorf("retryAfter = %d, want > 0", retryAfter)
	}

	// a different client is unaffected
	if ok, _ := l.Allow("5.6.7.8"); !ok {
		t.Error("independent client should not be limited")
	}

	// after the window elapses the counter resets
	now = now.Add(61 * time.Second)
	if ok, _ := l.Allow("1.2.3.4"); !ok {
		t.Error("first request of a new window should succeed")
	}
}

func TestLimiterRetryAfterCountdown(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := New(60*time.Second, 1)
	l.SetNow(func() time.Time { return now })

	l.Allow("c")
	now = now.Add(45 * time.Second)
	_, retryAfter := l.Allow("c")
	if retryAfter != 15 {
		t.Errorf("retryAfter = %d, want 15", retryAfter)
	}
}

func TestLimiterPrune(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := New(60*time.Second, 5)
	l.SetNow(func() time.Time { return now })

	l.Allow("a")
	l.Allow("b")
	now = now.Add(2 * time.Minute)
	l.Allow("c")
	l.Prune()

	l.mu.Lock()
	n := len(l.clients)
	l.mu.Unlock()
	if n != 1 {
		t.Errorf("expected 1 live window after prune, got %d", n)
	}
}

func TestMiddleware(t *testing.T) {
	l := New(60*time.Second, 2)
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/playlist/x", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	do()
	do()
	rec := do()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	var body struct {
		Error             string `json:"error"`
		RetryAfterSeconds int    `json:"retryAfterSeconds"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "rate_limited" || body.RetryAfterSeconds <= 0 {
		t.Errorf("unexpected body: %+v", body)
	}
}
