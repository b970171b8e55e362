package bootstrap

import (
	"log/slog"

	"github.com/osse101/SpaceCases_Go/internal/config"
	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// SetupLogger installs the process logger from cfg and logs the startup
// banner. Source locations are only attached outside production.
func SetupLogger(cfg *config.Config) *slog.Logger {
	l := logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		!cfg.IsProduction(),
	))

	l.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	l.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"catalog_source", cfg.CatalogSource)

	return l
}
