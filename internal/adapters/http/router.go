package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/fridaygt/backend/config"
	v1 "github.com/fridaygt/backend/internal/adapters/http/api/v1"
	internalhttp "github.com/fridaygt/backend/internal/adapters/http/internal"
)

type Router struct {
	cfg       *config.Config
	db        *gorm.DB
	apiRouter *v1.Router
}

func NewRouter(cfg *config.Config, db *gorm.DB, apiRouter *v1.Router) *Router {
	return &Router{cfg: cfg, db: db, apiRouter: apiRouter}
}

func (r *Router) Setup(e *echo.Echo) {
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())

	internalhttp.Register(e.Group("/internal"), r.db)
	r.apiRouter.Register(e.Group(r.cfg.HTTPBasePath))
}
