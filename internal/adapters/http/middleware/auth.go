package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/config"
	"github.com/fridaygt/backend/internal/domain"
	"github.com/fridaygt/backend/internal/tokenverify"
	"github.com/fridaygt/backend/internal/usecase"
	res "github.com/fridaygt/backend/pkg/http"
)

const sessionContextKey = "gt_session"

// AuthMiddleware resolves the caller's session on every request: cookie JWT
// → verified email → application-user lookup. Anonymous and invalid-cookie
// requests proceed with no session attached; guards decide what that means.
type AuthMiddleware struct {
	cfg      *config.Config
	parser   tokenverify.Parser
	auth     usecase.AuthService
	resolver usecase.SessionResolver
}

func NewAuthMiddleware(cfg *config.Config, parser tokenverify.Parser, auth usecase.AuthService, resolver usecase.SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg, parser: parser, auth: auth, resolver: resolver}
}

// Resolve attaches the session (if any) and never rejects by itself.
func (m *AuthMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Request().Cookie(m.cfg.CookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}
		result, err := tokenverify.Verify(m.parser, cookie.Value, time.Now)
		if err != nil {
			return next(c)
		}
		if !m.auth.SessionActive(c.Request().Context(), result.SessionID) {
			return next(c)
		}
		session := m.resolver.Resolve(c.Request().Context(), result.Email)
		c.Set(sessionContextKey, &session)
		c.Set("session_id", result.SessionID)
		return next(c)
	}
}

// RequireAuth rejects requests with no resolved session.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if SessionFromContext(c) == nil {
			return res.Err(c, http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

// RequireApproved rejects PENDING sessions before they reach domain logic.
// The check is role-based for every route; whether a user row exists is
// irrelevant here.
func (m *AuthMiddleware) RequireApproved(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := SessionFromContext(c)
		if s == nil {
			return res.Err(c, http.StatusUnauthorized, "authentication required")
		}
		if !s.Role.Approved() {
			return res.Err(c, http.StatusForbidden, "account pending approval")
		}
		return next(c)
	}
}

// RequireAdmin rejects everything but ADMIN sessions.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := SessionFromContext(c)
		if s == nil {
			return res.Err(c, http.StatusUnauthorized, "authentication required")
		}
		if s.Role != domain.RoleAdmin {
			return res.Err(c, http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func SessionFromContext(c echo.Context) *usecase.Session {
	s, _ := c.Get(sessionContextKey).(*usecase.Session)
	return s
}

func SessionIDFromContext(c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	return sid
}
