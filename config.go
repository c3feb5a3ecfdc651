package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything main needs to wire the service. All values come
// from DREAMFORGE_* environment variables, optionally via a .env file.
type Config struct {
	// ModelPath points at the diffusion model weights. Required; the
	// process refuses to start without a loadable model.
	ModelPath string

	// StylePresetPath optionally overrides the built-in preset catalog
	// with a YAML file
	StylePresetPath string

	// OutputsDir receives generated images, sidecars and thumbnails
	OutputsDir string

	// DatabasePath is the SQLite history index; empty disables indexing
	DatabasePath string
	// MigrationsPath is the golang-migrate source URL
	MigrationsPath string

	// LogFile is the rotated structured log; empty logs to console only
	LogFile string

	Host string
	Port int

	// QueueDepth bounds how many requests may wait for the model
	QueueDepth int

	// ShutdownTimeout bounds graceful teardown
	ShutdownTimeout time.Duration

	// DevMode switches console logging to a human-readable format
	DevMode bool
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		ModelPath:       os.Getenv("DREAMFORGE_MODEL_PATH"),
		StylePresetPath: os.Getenv("DREAMFORGE_STYLE_PRESETS"),
		OutputsDir:      envString("DREAMFORGE_OUTPUTS_DIR", "outputs"),
		DatabasePath:    envString("DREAMFORGE_DB_PATH", "dreamforge.sqlite"),
		MigrationsPath:  envString("DREAMFORGE_MIGRATIONS_PATH", "file://db/migrations"),
		LogFile:         envString("DREAMFORGE_LOG_FILE", "dreamforge.log"),
		Host:            envString("DREAMFORGE_HOST", "localhost"),
		Port:            envInt("DREAMFORGE_PORT", 8080),
		QueueDepth:      envInt("DREAMFORGE_QUEUE_DEPTH", 64),
		ShutdownTimeout: envDuration("DREAMFORGE_SHUTDOWN_TIMEOUT", 30*time.Second),
		DevMode:         os.Getenv("DREAMFORGE_DEV_MODE") == "true",
	}

	if cfg.ModelPath == "" {
		return cfg, fmt.Errorf("DREAMFORGE_MODEL_PATH is required")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("DREAMFORGE_PORT %d out of range", cfg.Port)
	}
	if cfg.QueueDepth < 1 {
		return cfg, fmt.Errorf("DREAMFORGE_QUEUE_DEPTH must be positive")
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
