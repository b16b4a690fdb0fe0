package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	nats "github.com/nats-io/nats.go"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/fridaygt/backend/config"
	httpadapter "github.com/fridaygt/backend/internal/adapters/http"
	apiv1 "github.com/fridaygt/backend/internal/adapters/http/api/v1"
	handlers "github.com/fridaygt/backend/internal/adapters/http/api/v1/handlers"
	authmw "github.com/fridaygt/backend/internal/adapters/http/middleware"
	natsadapter "github.com/fridaygt/backend/internal/adapters/nats"
	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	"github.com/fridaygt/backend/internal/usecase"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

type App struct {
	cfg      *config.Config
	logger   pkglog.Logger
	db       *gorm.DB
	natsConn *nats.Conn
	echo     *echo.Echo
}

func New(ctx context.Context) (*App, error) {
	cfg := config.MustLoad()
	appLogger := pkglog.New(cfg.AppEnv)

	db, err := gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{
		Logger:         loggerForGorm(cfg),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&domain.AuthIdentity{}, &domain.AuthSession{}, &domain.VerificationToken{},
		&domain.User{},
		&domain.Track{}, &domain.Car{}, &domain.Part{},
		&domain.CarBuild{}, &domain.BuildUpgrade{}, &domain.BuildSetting{},
		&domain.Race{}, &domain.RaceCar{}, &domain.LapTime{},
		&domain.RunList{}, &domain.RunListEntry{}, &domain.RunListEntryCar{},
		&domain.RunSession{}, &domain.SessionAttendance{},
	); err != nil {
		return nil, err
	}

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		log.Printf("nats connect failed: %v", err)
	}

	userRepo := repo.NewAppUserRepository(db)
	authRepo := repo.NewAuthRepository(db)
	catalogRepo := repo.NewCatalogRepository(db)
	buildRepo := repo.NewBuildRepository(db)
	raceRepo := repo.NewRaceRepository(db)
	lapRepo := repo.NewLapTimeRepository(db)
	runListRepo := repo.NewRunListRepository(db)

	var mailer natsadapter.MailerClient
	var lifecycle natsadapter.LifecycleClient
	if nc != nil {
		mailer = natsadapter.NewMailerClient(nc, cfg.NATSMagicLinkSubject)
		lifecycle = natsadapter.NewLifecycleClient(nc, cfg.NATSUserEventSubject)
	}

	signer, err := usecase.NewJWTSigner(cfg)
	if err != nil {
		return nil, err
	}

	svcLogger := func(name string) pkglog.Logger {
		return pkglog.With(appLogger, pkglog.Fields{"component": name})
	}

	authz := usecase.NewAuthorizer(cfg)
	resolver := usecase.NewSessionResolver(userRepo, svcLogger("session"))
	authService := usecase.NewAuthService(cfg, svcLogger("auth"), authRepo, mailer, signer)
	userService := usecase.NewUserService(cfg, svcLogger("user"), userRepo, lifecycle)
	catalogService := usecase.NewCatalogService(svcLogger("catalog"), catalogRepo, authz)
	buildService := usecase.NewBuildService(svcLogger("build"), buildRepo, userRepo, authz)
	raceService := usecase.NewRaceService(svcLogger("race"), raceRepo, authz)
	lapService := usecase.NewLapTimeService(svcLogger("laptime"), lapRepo, buildRepo, authz)
	runListService := usecase.NewRunListService(svcLogger("runlist"), runListRepo, authz)

	authMW := authmw.NewAuthMiddleware(cfg, signer, authService, resolver)
	limiter := authmw.NewRateLimiter(memory.NewStore(), cfg.RateLimitDisabled)

	apiRouter := apiv1.NewRouter(cfg, apiv1.Handlers{
		Auth:    handlers.NewAuthHandler(cfg, authService),
		User:    handlers.NewUserHandler(userService),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Build:   handlers.NewBuildHandler(buildService),
		Race:    handlers.NewRaceHandler(raceService),
		LapTime: handlers.NewLapTimeHandler(lapService),
		RunList: handlers.NewRunListHandler(runListService),
	}, authMW, limiter)
	router := httpadapter.NewRouter(cfg, db, apiRouter)

	if nc != nil {
		verifyHandler := natsadapter.NewVerifyHandler(signer, &roleResolver{resolver: resolver})
		if err := verifyHandler.Subscribe(nc, cfg.NATSVerifySubject, cfg.AppName); err != nil {
			appLogger.Error().Err(err).Msg("verify subscription failed")
		}
	}

	e := echo.New()
	router.Setup(e)

	return &App{cfg: cfg, logger: appLogger, db: db, natsConn: nc, echo: e}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.echo.Shutdown(shutdownCtx)
	}()
	go func() {
		errCh <- a.echo.Start(fmt.Sprintf("%s:%s", a.cfg.HTTPHost, a.cfg.HTTPPort))
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	if a.natsConn != nil {
		_ = a.natsConn.Drain()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// roleResolver narrows the request-scoped session resolver to the role and
// gamertag pair the NATS verify responder hands to companion services.
type roleResolver struct {
	resolver usecase.SessionResolver
}

func (r *roleResolver) ResolveRole(ctx context.Context, email string) (string, string) {
	session := r.resolver.Resolve(ctx, email)
	gamertag := ""
	if session.Gamertag != nil {
		gamertag = *session.Gamertag
	}
	return string(session.Role), gamertag
}

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

func loggerForGorm(cfg *config.Config) logger.Interface {
	level := logger.Silent
	switch cfg.AppEnv {
	case "local":
		level = logger.Info
	default:
		level = logger.Warn
	}
	return logger.Default.LogMode(level)
}
