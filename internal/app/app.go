package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/config"
	"github.com/studydesk/core/internal/database"
	"github.com/studydesk/core/internal/middleware"
	"github.com/studydesk/core/internal/modules/storage/objectstore"
	pkgcron "github.com/studydesk/core/internal/pkg/cron"
	pkgredis "github.com/studydesk/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	redis  *pkgredis.Client
	store  objectstore.Store
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: settings → DB → Redis → storage → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.URL != "" {
		rc, err = pkgredis.Connect(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("redis url is empty, rate limit and idempotence are disabled")
	}

	store, err := objectstore.New(cfg.Storage, cfg.StaticDir())
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	if local, ok := store.(*objectstore.LocalStore); ok {
		router.Static(objectstore.DefaultLocalURL, local.Dir())
	}

	ctx, cancel := context.WithCancel(context.Background())
	sched := pkgcron.New(logger.Named("CronService"))
	registerCronJobs(sched, db, logger)
	sched.Start(ctx)

	app := &App{
		cfg:    cfg,
		router: router,
		db:     db,
		redis:  rc,
		store:  store,
		logger: logger,
		cancel: cancel,
		sched:  sched,
	}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and closes connections.
func (a *App) Shutdown() {
	a.cancel()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
	}
}
