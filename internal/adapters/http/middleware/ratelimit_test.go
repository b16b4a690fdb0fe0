package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func doLimited(t *testing.T, rl *RateLimiter, mw echo.MiddlewareFunc) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/auth/login")
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec.Code
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	rl := NewRateLimiter(memory.NewStore(), false)
	mw := rl.Limit(2, time.Minute)

	for i := 0; i < 2; i++ {
		if code := doLimited(t, rl, mw); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := doLimited(t, rl, mw); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the limit, got %d", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	rl := NewRateLimiter(memory.NewStore(), true)
	mw := rl.Limit(1, time.Minute)

	for i := 0; i < 5; i++ {
		if code := doLimited(t, rl, mw); code != http.StatusOK {
			t.Fatalf("disabled limiter must pass everything, got %d", code)
		}
	}
}

func TestRateLimitSetsHeaders(t *testing.T) {
	rl := NewRateLimiter(memory.NewStore(), false)
	mw := rl.Limit(5, time.Minute)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "203.0.113.8:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/auth/login")
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "5" {
		t.Fatalf("limit header missing: %v", rec.Header())
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "4" {
		t.Fatalf("remaining header wrong: %v", rec.Header())
	}
}
