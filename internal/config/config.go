// Package config loads server configuration from the environment.
//
// Everything has a documented default, so the server starts with zero
// configuration. A local .env file is honored when the entry point loads
// it via godotenv before calling Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for every tunable.
const (
	DefaultServerName     = "specsmith"
	DefaultMaxFileSize    = 1 << 20 // 1 MiB
	DefaultMaxInputLength = 10000
	DefaultMaxRequests    = 10
	DefaultWindowMS       = 60000
	DefaultOutputDir      = "output"
)

// Config carries all process-wide settings. It is immutable after Load
// and passed explicitly to the components that need it — never held as
// ambient global state.
type Config struct {
	ServerName    string
	ServerVersion string

	// MaxFileSize caps generated document size in bytes.
	MaxFileSize int64

	// MaxInputLength caps generic description fields in characters.
	MaxInputLength int

	RateLimitMaxRequests int
	RateLimitWindow      time.Duration

	// OutputDir is the allow-listed output directory under the working
	// directory.
	OutputDir string
}

// Load reads the environment, applies defaults, and validates the result.
// buildVersion is the ldflags version injected at the composition root;
// SERVER_VERSION overrides it.
func Load(buildVersion string) (*Config, error) {
	cfg := &Config{
		ServerName:           getEnv("SERVER_NAME", DefaultServerName),
		ServerVersion:        getEnv("SERVER_VERSION", buildVersion),
		MaxFileSize:          getEnvAsInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
		MaxInputLength:       getEnvAsInt("MAX_INPUT_LENGTH", DefaultMaxInputLength),
		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", DefaultMaxRequests),
		RateLimitWindow:      time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_MS", DefaultWindowMS)) * time.Millisecond,
		OutputDir:            getEnv("OUTPUT_DIR", DefaultOutputDir),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects non-positive limits.
func (c *Config) Validate() error {
	if c.ServerName == "" {
		return fmt.Errorf("server name cannot be empty")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxInputLength <= 0 {
		return fmt.Errorf("MAX_INPUT_LENGTH must be positive, got %d", c.MaxInputLength)
	}
	if c.RateLimitMaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be positive, got %d", c.RateLimitMaxRequests)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_MS must be positive")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
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

func getEnvAsInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
