// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// SchedulerConfig provides settings for the auto-processing loop.
type SchedulerConfig interface {
	GetAutoProcessInterval() time.Duration
}

// BureauConfig provides settings for the credit bureau collaborator.
type BureauConfig interface {
	GetBureauScoreFloor() int
	GetBureauScoreCeiling() int
	GetBureauRateLimitRPS() float64
	GetBureauDefaultRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	DatabaseURL         string
	CORSAllowAll        bool
	CORSOrigins         []string
	RateLimitRPS        float64
	RateLimitBurst      int
	AutoProcessInterval time.Duration
	BureauScoreFloor    int
	BureauScoreCeiling  int
	BureauRateLimitRPS  float64
	BureauDefaultRegion string
}

// Load reads configuration from the environment, with .env support.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	rateLimitRPS, err := parseFloat("RATE_LIMIT_RPS", "20")
	if err != nil {
		return nil, err
	}
	rateLimitBurst, err := parseInt("RATE_LIMIT_BURST", "40")
	if err != nil {
		return nil, err
	}
	autoProcessInterval, err := parseDuration("AUTO_PROCESS_INTERVAL", "10s")
	if err != nil {
		return nil, err
	}
	bureauScoreFloor, err := parseInt("BUREAU_SCORE_FLOOR", "500")
	if err != nil {
		return nil, err
	}
	bureauScoreCeiling, err := parseInt("BUREAU_SCORE_CEILING", "750")
	if err != nil {
		return nil, err
	}
	bureauRateLimitRPS, err := parseFloat("BUREAU_RATE_LIMIT_RPS", "5")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		RateLimitRPS:        rateLimitRPS,
		RateLimitBurst:      rateLimitBurst,
		AutoProcessInterval: autoProcessInterval,
		BureauScoreFloor:    bureauScoreFloor,
		BureauScoreCeiling:  bureauScoreCeiling,
		BureauRateLimitRPS:  bureauRateLimitRPS,
		BureauDefaultRegion: getEnv("BUREAU_DEFAULT_REGION", "ZA"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.BureauScoreFloor > cfg.BureauScoreCeiling {
		return nil, fmt.Errorf("BUREAU_SCORE_FLOOR cannot exceed BUREAU_SCORE_CEILING")
	}
	if cfg.AutoProcessInterval <= 0 {
		return nil, fmt.Errorf("AUTO_PROCESS_INTERVAL must be positive")
	}

	return cfg, nil
}

// Interface implementations.

func (c *Config) GetDatabaseURL() string                { return c.DatabaseURL }
func (c *Config) GetHTTPAddr() string                   { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool                 { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string              { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64              { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int                { return c.RateLimitBurst }
func (c *Config) GetAutoProcessInterval() time.Duration { return c.AutoProcessInterval }
func (c *Config) GetBureauScoreFloor() int              { return c.BureauScoreFloor }
func (c *Config) GetBureauScoreCeiling() int            { return c.BureauScoreCeiling }
func (c *Config) GetBureauRateLimitRPS() float64        { return c.BureauRateLimitRPS }
func (c *Config) GetBureauDefaultRegion() string        { return c.BureauDefaultRegion }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Numeric values fail loudly: a typo silently coerced to zero would disable
// the rate limiter or the score band instead of refusing to start.

func parseDuration(key, fallback string) (time.Duration, error) {
	parsed, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration: %w", key, err)
	}
	return parsed, nil
}

func parseInt(key, fallback string) (int, error) {
	parsed, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer: %w", key, err)
	}
	return parsed, nil
}

func parseFloat(key, fallback string) (float64, error) {
	parsed, err := strconv.ParseFloat(getEnv(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number: %w", key, err)
	}
	return parsed, nil
}
