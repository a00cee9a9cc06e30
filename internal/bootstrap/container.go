package bootstrap

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/schema-studio/schema-studio/internal/config"
	"github.com/schema-studio/schema-studio/internal/infra/cache"
	"github.com/schema-studio/schema-studio/internal/infra/gemini"
	"github.com/schema-studio/schema-studio/internal/infra/logger"
	"github.com/schema-studio/schema-studio/internal/modules/handler"
	"github.com/schema-studio/schema-studio/internal/modules/repo"
	"github.com/schema-studio/schema-studio/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// Redis, only dialed when the session store runs on it. Providers run
	// lazily on first invoke, which happens after tracing setup, so the
	// instrumentation picks up the global tracer provider.
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb, err := cache.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != "" {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				return nil, err
			}
		}
		return rdb, nil
	})

	// Completion client
	do.Provide(inj, func(i *do.Injector) (*gemini.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return gemini.NewClient(cfg, log), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.SessionRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Session.Backend == "redis" {
			rdb := do.MustInvoke[*redis.Client](i)
			ttl := time.Duration(cfg.Session.TTLSec) * time.Second
			return repo.NewRedisSessionRepo(rdb, ttl), nil
		}
		return repo.NewMemorySessionRepo(), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.WorkflowService, error) {
		return service.NewWorkflowService(
			do.MustInvoke[repo.SessionRepo](i),
			do.MustInvoke[*gemini.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SessionService, error) {
		return service.NewSessionService(do.MustInvoke[repo.SessionRepo](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.WorkflowHandler, error) {
		return handler.NewWorkflowHandler(do.MustInvoke[service.WorkflowService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SessionHandler, error) {
		return handler.NewSessionHandler(do.MustInvoke[service.SessionService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.LanguageHandler, error) {
		return handler.NewLanguageHandler(), nil
	})

	return inj
}
