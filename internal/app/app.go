package app

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/db"
	apphttp "github.com/yungbote/storefront-backend/internal/http"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Server   *apphttp.Server

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, cfg.Otel)
	metrics := observability.Init(cfg.Metrics, log)

	dbService, err := db.Open(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(dbService.DB()); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	a, err := Assemble(log, cfg, dbService.DB(), metrics)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}
	a.dbService = dbService
	a.otelShutdown = otelShutdown
	return a, nil
}

// Assemble wires repos, services and HTTP on an already migrated database.
func Assemble(log *logger.Logger, cfg Config, gdb *gorm.DB, metrics *observability.Metrics) (*App, error) {
	reposet := wireRepos(gdb, log)
	serviceset, err := wireServices(gdb, log, cfg, reposet, metrics)
	if err != nil {
		return nil, err
	}
	handlerset := wireHandlers(log, gdb, serviceset)
	server := apphttp.NewServer(log, cfg.HTTPAddr, cfg.ShutdownTimeout, routerConfig(log, cfg, metrics, handlerset, serviceset))

	return &App{
		Log:      log,
		DB:       gdb,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Metrics:  metrics,
		Server:   server,
	}, nil
}

// Run blocks until ctx is cancelled or a listener fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Server.Run(gctx)
	})
	if a.Metrics != nil {
		g.Go(func() error {
			return a.Metrics.CollectDB(gctx, a.Log, a.DB)
		})
		if a.Cfg.Metrics.Addr != "" {
			g.Go(func() error {
				return a.Metrics.Serve(gctx, a.Log, a.Cfg.Metrics.Addr)
			})
		}
	}
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil && a.Log != nil {
			a.Log.Warn("db close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
