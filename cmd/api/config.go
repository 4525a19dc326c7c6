package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	configPathEnv     = "CONFIG_PATH"
	defaultConfigPath = "configs/config.yaml"
)

// loadSettings reads .env when present and then the YAML file, and builds
// the global logger for the configured environment.
func loadSettings() *config.Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("ignoring unreadable .env: %v", err)
	}

	path := configPath()
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("config %s: %v", path, err)
	}

	logger.InitLogger(cfg.Server.Env, cfg.Server.LogLevel)
	logger.GlobalLogger.Zap().Info("configuration loaded",
		zap.String("path", path),
		zap.String("env", cfg.Server.Env),
	)
	return cfg
}

func configPath() string {
	if p := os.Getenv(configPathEnv); p != "" {
		return p
	}
	return defaultConfigPath
}
