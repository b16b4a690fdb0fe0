package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/config"
	"github.com/fridaygt/backend/internal/domain"
	"github.com/fridaygt/backend/internal/usecase"
)

func newGuardContext(session *usecase.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(sessionContextKey, session)
	}
	return c, rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireAuth(t *testing.T) {
	m := &AuthMiddleware{}

	c, rec := newGuardContext(nil)
	if err := m.RequireAuth(okHandler)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}

	c, rec = newGuardContext(&usecase.Session{Email: "x@example.com", Role: domain.RolePending})
	if err := m.RequireAuth(okHandler)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated: expected 200, got %d", rec.Code)
	}
}

func TestRequireApproved(t *testing.T) {
	m := &AuthMiddleware{}

	cases := []struct {
		name    string
		session *usecase.Session
		want    int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"pending", &usecase.Session{Email: "p@example.com", Role: domain.RolePending}, http.StatusForbidden},
		{"user", &usecase.Session{Email: "u@example.com", Role: domain.RoleUser}, http.StatusOK},
		{"admin", &usecase.Session{Email: "a@example.com", Role: domain.RoleAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newGuardContext(tc.session)
			if err := m.RequireApproved(okHandler)(c); err != nil {
				t.Fatalf("middleware error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	m := &AuthMiddleware{}

	cases := []struct {
		name    string
		session *usecase.Session
		want    int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"pending", &usecase.Session{Email: "p@example.com", Role: domain.RolePending}, http.StatusForbidden},
		{"user", &usecase.Session{Email: "u@example.com", Role: domain.RoleUser}, http.StatusForbidden},
		{"admin", &usecase.Session{Email: "a@example.com", Role: domain.RoleAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newGuardContext(tc.session)
			if err := m.RequireAdmin(okHandler)(c); err != nil {
				t.Fatalf("middleware error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestSessionFromContextMissing(t *testing.T) {
	c, _ := newGuardContext(nil)
	if s := SessionFromContext(c); s != nil {
		t.Fatalf("expected nil session, got %+v", s)
	}
}

type stubAuthService struct {
	active map[string]bool
}

func (s *stubAuthService) StartLogin(context.Context, string, string) error { return nil }
func (s *stubAuthService) VerifyMagicLink(context.Context, string, string, string) (string, time.Time, error) {
	return "", time.Time{}, nil
}
func (s *stubAuthService) Logout(context.Context, string, string) error { return nil }
func (s *stubAuthService) SessionActive(_ context.Context, sid string) bool {
	return s.active[sid]
}

type stubResolver struct {
	sessions map[string]usecase.Session
}

func (r *stubResolver) Resolve(_ context.Context, email string) usecase.Session {
	if s, ok := r.sessions[email]; ok {
		return s
	}
	return usecase.Session{Email: email, Role: domain.RolePending}
}

func newResolveMiddleware(t *testing.T, active map[string]bool, sessions map[string]usecase.Session) (*AuthMiddleware, usecase.JWTSigner, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "fridaygt-backend",
		JWTAudience: "fridaygt",
		CookieName:  "fgt_session",
	}
	signer, err := usecase.NewJWTSigner(cfg)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	m := NewAuthMiddleware(cfg, signer, &stubAuthService{active: active}, &stubResolver{sessions: sessions})
	return m, signer, cfg
}

func resolveRequest(t *testing.T, m *AuthMiddleware, cookie string) *usecase.Session {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "fgt_session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var got *usecase.Session
	if err := m.Resolve(func(c echo.Context) error {
		got = SessionFromContext(c)
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve must never reject, got %d", rec.Code)
	}
	return got
}

func TestResolveAttachesSession(t *testing.T) {
	sessions := map[string]usecase.Session{
		"driver@example.com": {Email: "driver@example.com", Role: domain.RoleUser},
	}
	m, signer, _ := newResolveMiddleware(t, map[string]bool{"sid-1": true}, sessions)

	token, err := signer.SignSessionToken("identity-1", map[string]interface{}{
		"email": "driver@example.com",
		"sid":   "sid-1",
	}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got := resolveRequest(t, m, token)
	if got == nil || got.Role != domain.RoleUser {
		t.Fatalf("expected resolved USER session, got %+v", got)
	}
}

func TestResolveNoCookieIsAnonymous(t *testing.T) {
	m, _, _ := newResolveMiddleware(t, nil, nil)
	if got := resolveRequest(t, m, ""); got != nil {
		t.Fatalf("expected anonymous, got %+v", got)
	}
}

func TestResolveGarbageCookieIsAnonymous(t *testing.T) {
	m, _, _ := newResolveMiddleware(t, nil, nil)
	if got := resolveRequest(t, m, "not-a-jwt"); got != nil {
		t.Fatalf("expected anonymous, got %+v", got)
	}
}

func TestResolveRevokedSessionIsAnonymous(t *testing.T) {
	m, signer, _ := newResolveMiddleware(t, map[string]bool{}, nil)

	token, err := signer.SignSessionToken("identity-1", map[string]interface{}{
		"email": "driver@example.com",
		"sid":   "sid-revoked",
	}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if got := resolveRequest(t, m, token); got != nil {
		t.Fatalf("revoked session must resolve to anonymous, got %+v", got)
	}
}
