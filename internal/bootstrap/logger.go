package bootstrap

import (
	"log/slog"

	"github.com/osse101/dropgame/internal/config"
	"github.com/osse101/dropgame/internal/logger"
)

// SetupLogger initializes the process logger from cfg and logs the
// effective configuration, secrets excluded.
func SetupLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"
	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info(LogMsgStarting, "environment", cfg.Environment, "version", cfg.Version)
	slog.Debug(LogMsgConfigurationUsed,
		"store", cfg.StoreBackend,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"health_port", cfg.HealthPort,
		"guild_scoped", cfg.DiscordGuildID != "",
		"ops_api", cfg.OpsAPIKey != "",
		"dev_mode", cfg.DevMode)
}
