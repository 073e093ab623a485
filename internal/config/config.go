// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir               string // Directory for the snapshot database (always absolute)
	Port                  int
	LogLevel              string
	DevMode               bool
	LedgerSource          string // File path, http(s):// URL or s3://bucket/key
	LedgerRefreshSchedule string // Cron spec with seconds field; empty disables refreshing
	SnapshotKeep          int
	SessionTTL            time.Duration
	Currency              string
	S3                    S3Config
}

// S3Config configures the S3 ledger source. Empty fields fall back to the
// default AWS credential chain.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads configuration from .env and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("TAXBOARD_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:               absDataDir,
		Port:                  getEnvAsInt("TAXBOARD_PORT", 8000),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DevMode:               getEnvAsBool("DEV_MODE", false),
		LedgerSource:          getEnv("LEDGER_SOURCE", filepath.Join(absDataDir, "ledger.json")),
		LedgerRefreshSchedule: strings.TrimSpace(getEnv("LEDGER_REFRESH_SCHEDULE", "")),
		SnapshotKeep:          getEnvAsInt("LEDGER_SNAPSHOT_KEEP", 5),
		SessionTTL:            time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		Currency:              strings.ToUpper(getEnv("CURRENCY", "EUR")),
		S3: S3Config{
			Region:          getEnv("S3_REGION", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SnapshotKeep < 0 {
		return fmt.Errorf("LEDGER_SNAPSHOT_KEEP must not be negative, got %d", c.SnapshotKeep)
	}
	if c.LedgerSource == "" {
		return fmt.Errorf("LEDGER_SOURCE is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

// SnapshotDBPath is the location of the snapshot database.
func (c *Config) SnapshotDBPath() string {
	return filepath.Join(c.DataDir, "snapshots.db")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
