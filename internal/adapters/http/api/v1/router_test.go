package v1

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/fridaygt/backend/config"
	"github.com/fridaygt/backend/internal/adapters/http/middleware"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	cfg := &config.Config{HTTPBasePath: "/api/v1"}
	e := echo.New()
	r := NewRouter(cfg, Handlers{},
		middleware.NewAuthMiddleware(cfg, nil, nil, nil),
		middleware.NewRateLimiter(memory.NewStore(), true))
	r.Register(e.Group(cfg.HTTPBasePath))

	routes := map[string]bool{}
	for _, route := range e.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestRouteTable(t *testing.T) {
	routes := registeredRoutes(t)

	for _, want := range []string{
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/callback",
		"PATCH /api/v1/user/profile",
		"DELETE /api/v1/admin/users/:id",
		"POST /api/v1/builds/:id/clone",
		"POST /api/v1/runlists/:id/reorder",
		"GET /api/v1/runlists/:id/sessions",
	} {
		if !routes[want] {
			t.Fatalf("route not registered: %s", want)
		}
	}
}

func TestAttendanceUsesPut(t *testing.T) {
	routes := registeredRoutes(t)

	path := "/api/v1/runlists/sessions/:sessionId/attendance"
	if !routes[http.MethodPut+" "+path] {
		t.Fatalf("attendance must be registered as PUT")
	}
	if routes[http.MethodPost+" "+path] {
		t.Fatalf("attendance must not accept POST")
	}
}
