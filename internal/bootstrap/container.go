package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/infra/cache"
	"github.com/Renishchandera/gameforge-ai/internal/infra/db"
	"github.com/Renishchandera/gameforge-ai/internal/infra/httpclient"
	"github.com/Renishchandera/gameforge-ai/internal/infra/logger"
	mq "github.com/Renishchandera/gameforge-ai/internal/infra/queue"
	"github.com/Renishchandera/gameforge-ai/internal/llm"
	"github.com/Renishchandera/gameforge-ai/internal/modules/handler"
	"github.com/Renishchandera/gameforge-ai/internal/modules/repo"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

// BuildContainer wires config and logger. Call ProvideAPI or ProvideGateway for the rest.
// An empty path falls back to GAMEFORGE_CONFIG and ./config.yaml.
func BuildContainer(configPath string) *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		if configPath != "" {
			return config.LoadFile(configPath)
		}
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	return inj
}

func telemetryOn(cfg *config.Config) bool {
	return cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != ""
}

// ProvideDB registers the store. It is shared by the API server and the migrate command.
func ProvideDB(inj *do.Injector) {
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if telemetryOn(cfg) {
			if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
				log.Warn("register gorm tracing", zap.Error(err))
			}
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})
}

// ProvideAPI registers everything the API server needs.
func ProvideAPI(inj *do.Injector) {
	ProvideDB(inj)

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb, err := cache.New(cfg)
		if err != nil {
			return nil, err
		}
		if telemetryOn(cfg) {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				do.MustInvoke[*zap.Logger](i).Warn("register redis tracing", zap.Error(err))
			}
		}
		return rdb, nil
	})
	do.Provide(inj, func(i *do.Injector) (cache.SessionStore, error) {
		return cache.NewSessionStore(do.MustInvoke[*redis.Client](i)), nil
	})

	// RabbitMQ Publisher, absent when no broker is configured
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		if cfg.RabbitMQ.URL == "" {
			log.Info("rabbitmq url not set, domain events disabled")
			return nil, nil
		}
		p, err := mq.NewPublisher(log, cfg, mq.NewDialFunc(cfg))
		if err != nil {
			log.Warn("rabbitmq unavailable, domain events disabled", zap.Error(err))
			return nil, nil
		}
		return p, nil
	})
	do.Provide(inj, func(i *do.Injector) (service.EventPublisher, error) {
		p := do.MustInvoke[*mq.Publisher](i)
		if p == nil {
			return nil, nil
		}
		return p, nil
	})

	// HTTP clients
	do.Provide(inj, func(i *do.Injector) (*httpclient.LLMClient, error) {
		return httpclient.NewLLMClient(do.MustInvoke[*config.Config](i), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*httpclient.PredictorClient, error) {
		return httpclient.NewPredictorClient(do.MustInvoke[*config.Config](i), do.MustInvoke[*zap.Logger](i)), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.IdeaRepo, error) {
		return repo.NewIdeaRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.DocRepo, error) {
		return repo.NewDocRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[cache.SessionStore](i),
			service.AuthOptionsFromConfig(do.MustInvoke[*config.Config](i)),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.IdeaService, error) {
		return service.NewIdeaService(
			do.MustInvoke[repo.IdeaRepo](i),
			do.MustInvoke[*httpclient.LLMClient](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.IdeaRepo](i),
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[*httpclient.PredictorClient](i),
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.DocService, error) {
		return service.NewDocService(
			do.MustInvoke[repo.DocRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(
			do.MustInvoke[service.AuthService](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.IdeaHandler, error) {
		return handler.NewIdeaHandler(do.MustInvoke[service.IdeaService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.DocHandler, error) {
		return handler.NewDocHandler(do.MustInvoke[service.DocService](i)), nil
	})
}

// ProvideGateway registers the LLM gateway process: provider, token budget and handler.
func ProvideGateway(inj *do.Injector) {
	do.Provide(inj, func(i *do.Injector) (llm.Provider, error) {
		return llm.NewOpenAIProvider(do.MustInvoke[*config.Config](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*llm.Budget, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return llm.NewBudget(cfg.LLM.Provider.FeasibilityMaxTokens)
	})
	do.Provide(inj, func(i *do.Injector) (*llm.Gateway, error) {
		return llm.NewGateway(
			do.MustInvoke[llm.Provider](i),
			do.MustInvoke[*llm.Budget](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.GatewayHandler, error) {
		return handler.NewGatewayHandler(do.MustInvoke[*llm.Gateway](i)), nil
	})
}
