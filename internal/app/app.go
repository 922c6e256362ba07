package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/db"
	"github.com/yungbote/selfinvest-backend/internal/observability"
	"github.com/yungbote/selfinvest-backend/internal/platform/cache"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/server"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Cache    *cache.Cache
	Repos    Repos
	Services Services
	Router   *gin.Engine
	Server   *server.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "selfinvest",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	database, err := db.NewDatabaseService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := database.DB()

	c, err := cache.New(log)
	if err != nil {
		log.Warn("Cache unavailable, continuing without it", "error", err)
		c = nil
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, c, reposet)
	handlerset := wireHandlers(log, serviceset)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(cfg, handlerset, middlewareset)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Cache:        c,
		Repos:        reposet,
		Services:     serviceset,
		Router:       router,
		Server:       server.New(log, ":"+cfg.Port, router),
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run()
}

func (a *App) Shutdown(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			a.Log.Error("HTTP shutdown failed", "error", err)
		}
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Error("OTel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
