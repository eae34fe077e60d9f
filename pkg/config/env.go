package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/speedrun-hq/romanizer/pkg/logger"
	"github.com/speedrun-hq/romanizer/pkg/roman"
)

const (
	// DefaultPort defines the default port for the HTTP server
	DefaultPort = "8080"

	// DefaultMaxRange defines the largest number of conversions a single range request may return
	DefaultMaxRange = roman.MaxDecimal

	// DefaultReadTimeout defines the default HTTP read timeout
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout defines the default HTTP write timeout
	DefaultWriteTimeout = 10 * time.Second

	// DefaultShutdownTimeout defines how long in-flight requests get to finish on shutdown
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultLogLevel defines the default log level
	DefaultLogLevel = logger.InfoLevel

	// DefaultLogColoring defines whether log prefixes are colored
	DefaultLogColoring = true
)

// GetEnvPort returns the HTTP server port from environment variables
func GetEnvPort() (string, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return DefaultPort, nil
	}

	// Validate port format
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid PORT value: %s, must be a valid integer", port)
	}
	return port, nil
}

// GetEnvMaxRange returns the maximum range size from environment variables
func GetEnvMaxRange() (int, error) {
	maxRange := os.Getenv("MAX_RANGE")
	if maxRange == "" {
		return DefaultMaxRange, nil
	}

	n, err := strconv.Atoi(maxRange)
	if err != nil {
		return 0, fmt.Errorf("invalid MAX_RANGE value: %s, must be an integer", maxRange)
	}
	if n <= 0 {
		return 0, fmt.Errorf("MAX_RANGE must be greater than 0")
	}
	return n, nil
}

// GetEnvLogLevel returns the log level from environment variables
func GetEnvLogLevel() (logger.Level, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return DefaultLogLevel, nil
	}

	l, err := logger.ParseLevel(level)
	if err != nil {
		return DefaultLogLevel, fmt.Errorf("invalid LOG_LEVEL value: %s, must be 'debug', 'info', 'notice' or 'error'", level)
	}
	return l, nil
}

// GetEnvLogColoring returns whether log coloring is enabled from environment variables
func GetEnvLogColoring() (bool, error) {
	coloring := os.Getenv("LOG_COLORING")
	if coloring == "" {
		return DefaultLogColoring, nil
	}

	if coloring == "true" {
		return true, nil
	} else if coloring == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid LOG_COLORING value: %s, must be 'true' or 'false'", coloring)
}

// getEnvDuration reads a Go duration string such as "10s"
func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %s, must be a valid duration string", key, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return d, nil
}
