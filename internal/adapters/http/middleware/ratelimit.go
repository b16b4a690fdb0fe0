package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ulule/limiter/v3"

	res "github.com/fridaygt/backend/pkg/http"
)

// RateLimiter wraps a limiter store keyed by client IP + route. The store is
// injected, so the in-memory store and a distributed one are interchangeable.
// The in-memory counter is a soft limit: increments under concurrency are
// not a hard guarantee.
type RateLimiter struct {
	store    limiter.Store
	disabled bool
}

func NewRateLimiter(store limiter.Store, disabled bool) *RateLimiter {
	return &RateLimiter{store: store, disabled: disabled}
}

// Limit returns middleware enforcing the given rate on the wrapped routes.
func (rl *RateLimiter) Limit(count int64, period time.Duration) echo.MiddlewareFunc {
	rate := limiter.Rate{Limit: count, Period: period}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.disabled {
				return next(c)
			}
			key := c.RealIP() + ":" + c.Path()
			lctx, err := limiter.New(rl.store, rate).Get(c.Request().Context(), key)
			if err != nil {
				// A broken counter store should not take the API down.
				return next(c)
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
			if lctx.Reached {
				return res.Err(c, http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
