package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/schema-studio/schema-studio/internal/bootstrap"
	"github.com/schema-studio/schema-studio/internal/config"
	"github.com/schema-studio/schema-studio/internal/infra/cache"
	"github.com/schema-studio/schema-studio/internal/modules/handler"
	"github.com/schema-studio/schema-studio/internal/router"
	"github.com/schema-studio/schema-studio/internal/telemetry"
)

// @title Schema Studio API
// @version 0.1.0
// @description AI assisted database schema and data layer code generation.
// @BasePath /api/v1

func main() {
	inj := bootstrap.BuildContainer()

	cfg, err := do.Invoke[*config.Config](inj)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := do.Invoke[*zap.Logger](inj)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		logger.Fatal("setup tracing", zap.Error(err))
	}

	r := router.NewRouter(router.RouterDeps{
		Config:          cfg,
		Log:             logger,
		WorkflowHandler: do.MustInvoke[*handler.WorkflowHandler](inj),
		SessionHandler:  do.MustInvoke[*handler.SessionHandler](inj),
		LanguageHandler: do.MustInvoke[*handler.LanguageHandler](inj),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("session_backend", cfg.Session.Backend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if cfg.Session.Backend == "redis" {
		if rdb, err := do.Invoke[*redis.Client](inj); err == nil {
			if err := cache.Close(rdb); err != nil {
				logger.Error("close redis", zap.Error(err))
			}
		}
	}
	if tp != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown tracing", zap.Error(err))
		}
	}
	logger.Info("server exited")
}
