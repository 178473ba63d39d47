package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httphandlers "github.com/rafabene/usermanager/internal/handlers/http"
	"github.com/rafabene/usermanager/internal/handlers/middleware"
	"github.com/rafabene/usermanager/internal/infrastructure/config"
	"github.com/rafabene/usermanager/internal/infrastructure/i18n"
	"github.com/rafabene/usermanager/internal/infrastructure/logging"
	"github.com/rafabene/usermanager/internal/infrastructure/metrics"
	"github.com/rafabene/usermanager/internal/infrastructure/notifications"
	"github.com/rafabene/usermanager/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/usermanager/internal/services"
)

//	@title			User Manager API
//	@version		1.0
//	@description	Gerenciamento de usuários com filtros, exportação e indicadores.
//	@host			localhost:8080
//	@BasePath		/api/v1

func main() {
	migrateDown := flag.Bool("migrate-down", false, "revert all migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := logging.NewLogger(cfg.Env, cfg.Logging.Level, "usermanager-api")
	logger.Info("starting usermanager backend",
		"env", cfg.Env,
		"version", "dev",
	)

	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.Logging.Level, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if *migrateDown {
		if err := postgres.MigrateDown(db, cfg.Migrations.Path, logger); err != nil {
			logger.Error("failed to revert migrations", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := postgres.RunMigrations(db, cfg.Migrations.Path, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	i18nService, err := i18n.NewEmbeddedService("en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		os.Exit(1)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := notifications.NewHub(logger, cfg.CORS.Origins())
	go hub.Run(ctx)

	appMetrics := metrics.New()

	userRepo := postgres.NewUserRepository(db)
	uow := postgres.NewUnitOfWork(db)
	userService := services.NewUserService(userRepo, uow, hub, logger)
	userHandler := httphandlers.NewUserHandler(userService, appMetrics)

	limiter := middleware.NewRateLimiter(
		cfg.RateLimit.RPS,
		cfg.RateLimit.Burst,
		logger,
		httphandlers.RateLimitedResponder(appMetrics),
	)
	limiter.StartCleanup(ctx, time.Minute, 10*time.Minute)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Env:            cfg.Env,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.Origins(),
	}, httphandlers.Dependencies{
		Users:       userHandler,
		I18n:        i18nService,
		Logger:      logger,
		Metrics:     appMetrics,
		Hub:         hub,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}
