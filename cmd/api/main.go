package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chartpro/emr-api/internal/config"
	"github.com/chartpro/emr-api/internal/handler"
	adminHandler "github.com/chartpro/emr-api/internal/handler/admin"
	exportHandler "github.com/chartpro/emr-api/internal/handler/export"
	noteHandler "github.com/chartpro/emr-api/internal/handler/note"
	patientHandler "github.com/chartpro/emr-api/internal/handler/patient"
	"github.com/chartpro/emr-api/internal/middleware"
	"github.com/chartpro/emr-api/internal/repository"
	"github.com/chartpro/emr-api/internal/router"
	composerService "github.com/chartpro/emr-api/internal/service/composer"
	rosterService "github.com/chartpro/emr-api/internal/service/roster"
	tagsService "github.com/chartpro/emr-api/internal/service/tags"
	"github.com/chartpro/emr-api/internal/store"
	filestore "github.com/chartpro/emr-api/internal/store/file"
	pgstore "github.com/chartpro/emr-api/internal/store/postgres"
	redisstore "github.com/chartpro/emr-api/internal/store/redis"
	"github.com/chartpro/emr-api/pkg/logger"
	"github.com/chartpro/emr-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Server.LogLevel),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	kv, err := newStore(cfg)
	if err != nil {
		appLog.Fatal(err, "failed to open persistent store")
	}
	defer kv.Close()

	m := metrics.NewMetrics("chartpro")

	ctx := context.Background()
	chartRepo := repository.NewChartRepository(kv, m)
	rosterSvc := rosterService.NewService(ctx, chartRepo, m)
	composerSvc := composerService.NewService(rosterSvc, m)
	tagsSvc := tagsService.NewService(ctx, chartRepo)

	middleware.RegisterValidators()

	h := handler.NewHandler(kv)
	respCache := middleware.NewResponseCache(cfg.API.CacheTTL, 2*cfg.API.CacheTTL, rosterSvc.Version,
		"/drafts", "/tags", "/export")

	r := router.NewRouter(h, respCache, router.Config{
		RPS:           cfg.API.RateLimitRPS,
		Burst:         cfg.API.RateLimitBurst,
		CORSConfig:    middleware.DefaultCORSConfig(),
		CacheTTL:      cfg.API.CacheTTL,
		MetricsPrefix: "chartpro_http",
	},
		patientHandler.NewHandler(rosterSvc),
		noteHandler.NewHandler(rosterSvc, composerSvc),
		adminHandler.NewHandler(tagsSvc),
		exportHandler.NewHandler(rosterSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLog.Info("starting server", "port", cfg.Server.Port, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(err, "server forced to shutdown")
	}

	appLog.Info("server exited properly")
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "file":
		return filestore.New(cfg.Store.DataDir)
	case "redis":
		return redisstore.New(redisstore.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     10,
			MinIdleConns: 2,
		})
	case "postgres":
		return pgstore.New(pgstore.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
