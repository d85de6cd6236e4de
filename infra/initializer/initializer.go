package initializer

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/famledger/infra"
	infra_eventbus "github.com/amirasaad/famledger/infra/eventbus"
	infra_repository "github.com/amirasaad/famledger/infra/repository"
	"github.com/amirasaad/famledger/pkg/app"
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/eventbus"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		logger.Info("Running database migrations")
		if err := infra.Migrate(db, infra.Up); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			return nil, err
		}
	}
	deps.DB = db

	// Initialize unit of work
	deps.Uow = infra_repository.NewUoW(db)

	// Initialize event bus
	deps.EventBus, err = initEventBus(cfg, logger)
	if err != nil {
		return nil, err
	}

	return
}

// initEventBus picks the configured transport. A broker that cannot be
// reached falls back to the in-memory bus so the API still serves requests.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	ebc := cfg.EventBus
	if ebc == nil {
		ebc = &config.EventBus{}
	}

	switch ebc.Driver {
	case "", "memory":
		logger.Info("Using in-memory event bus")
		return infra_eventbus.NewWithMemory(logger), nil
	case "redis":
		if ebc.RedisURL == "" {
			return nil, fmt.Errorf("event bus driver redis requires EVENT_BUS_REDIS_URL")
		}
		bus, err := infra_eventbus.NewWithRedis(ebc.RedisURL, ebc.Stream, ebc.Group, logger)
		if err != nil {
			logger.Warn("Redis event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		logger.Info("Using redis event bus", "stream", ebc.Stream)
		return bus, nil
	case "amqp":
		if ebc.AmqpURL == "" {
			return nil, fmt.Errorf("event bus driver amqp requires EVENT_BUS_AMQP_URL")
		}
		bus, err := infra_eventbus.NewWithAMQP(ebc.AmqpURL, ebc.Exchange, ebc.Queue, logger)
		if err != nil {
			logger.Warn("AMQP event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		logger.Info("Using amqp event bus", "exchange", ebc.Exchange)
		return bus, nil
	default:
		return nil, fmt.Errorf("unknown event bus driver %q", ebc.Driver)
	}
}
