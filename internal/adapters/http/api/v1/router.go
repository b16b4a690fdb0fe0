package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/config"
	"github.com/fridaygt/backend/internal/adapters/http/api/v1/handlers"
	"github.com/fridaygt/backend/internal/adapters/http/middleware"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Catalog *handlers.CatalogHandler
	Build   *handlers.BuildHandler
	Race    *handlers.RaceHandler
	LapTime *handlers.LapTimeHandler
	RunList *handlers.RunListHandler
}

type Router struct {
	cfg      *config.Config
	handlers Handlers
	authMW   *middleware.AuthMiddleware
	limiter  *middleware.RateLimiter
}

func NewRouter(cfg *config.Config, h Handlers, authMW *middleware.AuthMiddleware, limiter *middleware.RateLimiter) *Router {
	return &Router{cfg: cfg, handlers: h, authMW: authMW, limiter: limiter}
}

func (r *Router) Register(g *echo.Group) {
	g.Use(r.authMW.Resolve)

	writeLimit := r.limiter.Limit(r.cfg.WriteRateLimit, r.cfg.WriteRatePeriod)

	auth := g.Group("/auth", r.limiter.Limit(r.cfg.AuthRateLimit, r.cfg.AuthRatePeriod))
	auth.POST("/login", r.handlers.Auth.Login)
	auth.GET("/callback", r.handlers.Auth.Callback)
	auth.POST("/logout", r.handlers.Auth.Logout)
	auth.GET("/session", r.handlers.Auth.Session)

	user := g.Group("/user", r.authMW.RequireAuth)
	user.PATCH("/profile", r.handlers.User.UpdateProfile, writeLimit)

	admin := g.Group("/admin/users", r.authMW.RequireAdmin)
	admin.GET("", r.handlers.User.List)
	admin.GET("/:id", r.handlers.User.Get)
	admin.POST("", r.handlers.User.Create, writeLimit)
	admin.PATCH("/:id", r.handlers.User.Update, writeLimit)
	admin.DELETE("/:id", r.handlers.User.Delete, writeLimit)

	// Reference data. Reads are public, writes are admin-only (enforced in
	// the service layer, doubled by the route guard).
	tracks := g.Group("/tracks")
	tracks.GET("", r.handlers.Catalog.ListTracks)
	tracks.GET("/:id", r.handlers.Catalog.GetTrack)
	tracks.POST("", r.handlers.Catalog.CreateTrack, r.authMW.RequireAdmin, writeLimit)
	tracks.PUT("/:id", r.handlers.Catalog.UpdateTrack, r.authMW.RequireAdmin, writeLimit)
	tracks.DELETE("/:id", r.handlers.Catalog.DeleteTrack, r.authMW.RequireAdmin, writeLimit)

	cars := g.Group("/cars")
	cars.GET("", r.handlers.Catalog.ListCars)
	cars.GET("/:id", r.handlers.Catalog.GetCar)
	cars.POST("", r.handlers.Catalog.CreateCar, r.authMW.RequireAdmin, writeLimit)
	cars.PUT("/:id", r.handlers.Catalog.UpdateCar, r.authMW.RequireAdmin, writeLimit)
	cars.DELETE("/:id", r.handlers.Catalog.DeleteCar, r.authMW.RequireAdmin, writeLimit)

	parts := g.Group("/parts")
	parts.GET("", r.handlers.Catalog.ListParts)
	parts.GET("/:id", r.handlers.Catalog.GetPart)
	parts.POST("", r.handlers.Catalog.CreatePart, r.authMW.RequireAdmin, writeLimit)
	parts.PUT("/:id", r.handlers.Catalog.UpdatePart, r.authMW.RequireAdmin, writeLimit)
	parts.DELETE("/:id", r.handlers.Catalog.DeletePart, r.authMW.RequireAdmin, writeLimit)

	builds := g.Group("/builds")
	builds.GET("", r.handlers.Build.List)
	builds.GET("/:id", r.handlers.Build.Get)
	builds.POST("", r.handlers.Build.Create, r.authMW.RequireApproved, writeLimit)
	builds.PUT("/:id", r.handlers.Build.Update, r.authMW.RequireApproved, writeLimit)
	builds.POST("/:id/clone", r.handlers.Build.Clone, r.authMW.RequireApproved, writeLimit)
	builds.DELETE("/:id", r.handlers.Build.Delete, r.authMW.RequireApproved, writeLimit)

	races := g.Group("/races")
	races.GET("", r.handlers.Race.List)
	races.GET("/:id", r.handlers.Race.Get)
	races.POST("", r.handlers.Race.Create, r.authMW.RequireApproved, writeLimit)
	races.PUT("/:id", r.handlers.Race.Update, r.authMW.RequireApproved, writeLimit)
	races.DELETE("/:id", r.handlers.Race.Delete, r.authMW.RequireApproved, writeLimit)

	laps := g.Group("/laptimes")
	laps.GET("", r.handlers.LapTime.List)
	laps.POST("", r.handlers.LapTime.Create, r.authMW.RequireApproved, writeLimit)
	laps.DELETE("/:id", r.handlers.LapTime.Delete, r.authMW.RequireApproved, writeLimit)

	runlists := g.Group("/runlists")
	runlists.GET("", r.handlers.RunList.List)
	runlists.GET("/:id", r.handlers.RunList.Get)
	runlists.POST("", r.handlers.RunList.Create, r.authMW.RequireApproved, writeLimit)
	runlists.PUT("/:id", r.handlers.RunList.Update, r.authMW.RequireApproved, writeLimit)
	runlists.DELETE("/:id", r.handlers.RunList.Delete, r.authMW.RequireApproved, writeLimit)
	runlists.POST("/:id/reorder", r.handlers.RunList.Reorder, r.authMW.RequireApproved, writeLimit)
	runlists.POST("/:id/sessions", r.handlers.RunList.CreateSession, r.authMW.RequireApproved, writeLimit)
	runlists.GET("/:id/sessions", r.handlers.RunList.ListSessions)
	runlists.PUT("/sessions/:sessionId/attendance", r.handlers.RunList.SetAttendance, r.authMW.RequireApproved, writeLimit)
}
