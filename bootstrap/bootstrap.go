package bootstrap

import (
	"fmt"

	"github.com/galaplate/schema/console"
	"github.com/galaplate/schema/database"
	"github.com/galaplate/schema/env"
	"github.com/galaplate/schema/logger"
)

// AppConfig holds what the CLI needs before any command runs
type AppConfig struct {
	EnvFile    string
	ConfigPath string
	Connection string
	LogDir     string // empty means $SCHEMA_LOGS_DIR, then no file logging
	LogLevel   string
	Registry   *database.MigrationRegistry
}

// DefaultConfig returns default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		EnvFile:    ".env",
		ConfigPath: "./config",
		LogLevel:   "info",
	}
}

// Init loads the dotenv file and configures logging.
func Init(cfg *AppConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := env.Load(cfg.EnvFile); err != nil {
		return fmt.Errorf("load %s: %w", cfg.EnvFile, err)
	}

	level, err := logger.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	logDir := cfg.LogDir
	if logDir == "" {
		logDir = env.Get("SCHEMA_LOGS_DIR")
	}
	if logDir != "" {
		if err := logger.SetDirectory(logDir); err != nil {
			return err
		}
	}

	logger.Debug("bootstrap: initialized", map[string]any{"config": cfg.ConfigPath, "connection": cfg.Connection})
	return nil
}

// Kernel returns a console kernel with every command registered.
func Kernel(cfg *AppConfig) *console.Kernel {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	kernel := console.NewKernel(cfg.ConfigPath)
	kernel.SetConnection(cfg.Connection)
	kernel.SetRegistry(cfg.Registry)
	kernel.RegisterCommands()
	return kernel
}

// Shutdown releases the log file.
func Shutdown() {
	if err := logger.Close(); err != nil {
		fmt.Println("close logs:", err)
	}
}
