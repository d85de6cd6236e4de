package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first of envFiles it can find (searching parent
// directories too) into the environment and then decodes App from it.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default().With("context", "config.Load")
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	loaded := false
	for _, name := range envFiles {
		path, err := FindEnvFile(name)
		if err != nil {
			logger.Debug("environment file not found", "name", name)
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("failed to read environment file", "path", path, "error", err)
			continue
		}
		logger.Info("environment loaded", "path", path)
		loaded = true
		break
	}
	if !loaded {
		logger.Info("no environment file, using process environment")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	slog.Default().Info("config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"db_auto_migrate", cfg.DB.AutoMigrate,
		"auth_strategy", cfg.Auth.Strategy,
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
		"rate_limit", fmt.Sprintf("%d/%s", cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
		"event_bus", cfg.EventBus.Driver,
	)
	return &cfg, nil
}

// maskValue keeps just enough of a connection string to tell them apart.
func maskValue(v string) string {
	if len(v) <= 6 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-4:]
}
