package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Renishchandera/gameforge-ai/internal/bootstrap"
	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/infra/cache"
	"github.com/Renishchandera/gameforge-ai/internal/infra/db"
	mq "github.com/Renishchandera/gameforge-ai/internal/infra/queue"
	"github.com/Renishchandera/gameforge-ai/internal/modules/handler"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
	"github.com/Renishchandera/gameforge-ai/internal/router"
	"github.com/Renishchandera/gameforge-ai/internal/telemetry"
)

const gracefulShutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the public API server",
	RunE:  runServe,
}

func setGinMode(cfg *config.Config) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// setupTelemetry starts tracing and metrics. The returned func flushes both.
func setupTelemetry(cfg *config.Config, serviceName string, log *zap.Logger) func(context.Context) {
	if _, err := telemetry.SetupTracing(cfg, serviceName); err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}
	if _, err := telemetry.SetupMetrics(cfg, serviceName); err != nil {
		log.Warn("metrics disabled", zap.Error(err))
	}
	return func(ctx context.Context) {
		if err := telemetry.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
		if err := telemetry.ShutdownMetrics(ctx); err != nil {
			log.Warn("meter shutdown", zap.Error(err))
		}
	}
}

// listenAndServe runs srv until SIGINT/SIGTERM, then shuts it down.
func listenAndServe(srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	inj := bootstrap.BuildContainer(configPath)
	bootstrap.ProvideAPI(inj)

	cfg, err := do.Invoke[*config.Config](inj)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	setGinMode(cfg)
	flush := setupTelemetry(cfg, cfg.App.Name, log)

	d, err := do.Invoke[*gorm.DB](inj)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	rdb, err := do.Invoke[*redis.Client](inj)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	publisher := do.MustInvoke[*mq.Publisher](inj)

	engine := router.NewRouter(router.RouterDeps{
		Config:         cfg,
		Log:            log,
		AuthService:    do.MustInvoke[service.AuthService](inj),
		AuthHandler:    do.MustInvoke[*handler.AuthHandler](inj),
		IdeaHandler:    do.MustInvoke[*handler.IdeaHandler](inj),
		ProjectHandler: do.MustInvoke[*handler.ProjectHandler](inj),
		TaskHandler:    do.MustInvoke[*handler.TaskHandler](inj),
		DocHandler:     do.MustInvoke[*handler.DocHandler](inj),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := listenAndServe(srv, log)

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Warn("close rabbitmq", zap.Error(err))
		}
	}
	if err := cache.Close(rdb); err != nil {
		log.Warn("close redis", zap.Error(err))
	}
	if err := db.Close(d); err != nil {
		log.Warn("close database", zap.Error(err))
	}
	flush(ctx)
	return serveErr
}
