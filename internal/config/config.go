package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mfigueroa/lectrack/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port            string
	DBPath          string
	YouTubeAPIKey   string
	YouTubeAPIURL   string
	MirrorURL       string
	LogLevel        string
	LogFormat       string
	RateLimitWindow time.Duration
	RateLimitMax    int
	ImportMaxPages  int
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", constants.DefaultPort),
		DBPath:          getEnv("DB_PATH", constants.DefaultDBPath),
		YouTubeAPIKey:   getEnv("YOUTUBE_API_KEY", ""),
		YouTubeAPIURL:   getEnv("YOUTUBE_API_URL", constants.DefaultYouTubeURL),
		MirrorURL:       getEnv("MIRROR_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", constants.DefaultRateLimitMax),
		ImportMaxPages:  getEnvInt("IMPORT_MAX_PAGES", constants.DefaultMaxPages),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	// Validate DBPath
	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	// Validate YouTubeAPIURL
	if c.YouTubeAPIURL == "" {
		errors = append(errors, "YOUTUBE_API_URL cannot be empty")
	} else {
		if _, err := url.Parse(c.YouTubeAPIURL); err != nil {
			errors = append(errors, fmt.Sprintf("YOUTUBE_API_URL is not a valid URL: %s", c.YouTubeAPIURL))
		}
	}

	// Validate MirrorURL (optional; mirroring is disabled when unset)
	if c.MirrorURL != "" {
		if _, err := url.Parse(c.MirrorURL); err != nil {
			errors = append(errors, fmt.Sprintf("MIRROR_URL is not a valid URL: %s", c.MirrorURL))
		}
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	// Validate rate limit settings
	if c.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_WINDOW must be positive, got: %s", c.RateLimitWindow))
	}
	if c.RateLimitMax < 1 {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_MAX must be at least 1, got: %d", c.RateLimitMax))
	}

	// Validate import bounds
	if c.ImportMaxPages < 1 {
		errors = append(errors, fmt.Sprintf("IMPORT_MAX_PAGES must be at least 1, got: %d", c.ImportMaxPages))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// HasAPIKey reports whether an external API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.YouTubeAPIKey != ""
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvDuration retrieves a duration environment variable with a fallback default
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
