package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/speedrun-hq/romanizer/pkg/logger"
)

// Config holds the configuration for the romanizer service
type Config struct {
	Port            string
	MaxRange        int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MetricsAPIKey   string
	LoggerConfig    LoggerConfig
}

// LoggerConfig holds the configuration for logging
type LoggerConfig struct {
	Level    logger.Level
	Coloring bool
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	return loadFromEnv()
}

func loadFromEnv() (*Config, error) {
	port, err := GetEnvPort()
	if err != nil {
		return nil, err
	}

	maxRange, err := GetEnvMaxRange()
	if err != nil {
		return nil, err
	}

	readTimeout, err := getEnvDuration("READ_TIMEOUT", DefaultReadTimeout)
	if err != nil {
		return nil, err
	}

	writeTimeout, err := getEnvDuration("WRITE_TIMEOUT", DefaultWriteTimeout)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	logLevel, err := GetEnvLogLevel()
	if err != nil {
		return nil, err
	}

	logColoring, err := GetEnvLogColoring()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            port,
		MaxRange:        maxRange,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		ShutdownTimeout: shutdownTimeout,
		MetricsAPIKey:   os.Getenv("METRICS_API_KEY"),
		LoggerConfig: LoggerConfig{
			Level:    logLevel,
			Coloring: logColoring,
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.ShutdownTimeout < cfg.WriteTimeout {
		return fmt.Errorf("SHUTDOWN_TIMEOUT (%s) must not be shorter than WRITE_TIMEOUT (%s)", cfg.ShutdownTimeout, cfg.WriteTimeout)
	}
	return nil
}
