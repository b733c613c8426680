package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Renishchandera/gameforge-ai/internal/bootstrap"
	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/modules/handler"
	"github.com/Renishchandera/gameforge-ai/internal/router"
	"github.com/Renishchandera/gameforge-ai/internal/telemetry"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start the internal LLM gateway",
	RunE:  runGateway,
}

func runGateway(cmd *cobra.Command, args []string) error {
	inj := bootstrap.BuildContainer(configPath)
	bootstrap.ProvideGateway(inj)

	cfg, err := do.Invoke[*config.Config](inj)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.LLM.InternalKey == "" {
		return errors.New("llm.internal_key must be set")
	}
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	setGinMode(cfg)
	flush := setupTelemetry(cfg, cfg.App.Name+"-gateway", log)
	if err := telemetry.InitLLMMetrics(); err != nil {
		log.Warn("llm metrics disabled", zap.Error(err))
	}

	h, err := do.Invoke[*handler.GatewayHandler](inj)
	if err != nil {
		return fmt.Errorf("build gateway: %w", err)
	}
	engine := router.NewGatewayRouter(router.GatewayDeps{Config: cfg, Log: log, Handler: h})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.LLM.GatewayPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := listenAndServe(srv, log)

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	flush(ctx)
	return serveErr
}
