package main

import (
	"log/slog"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`
	TreasuryHex     string        `env:"APP_TREASURY_KEY"`

	Postgres config.PostgresConfig
	Chain    config.ChainConfig
}
