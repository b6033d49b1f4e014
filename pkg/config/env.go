package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvCatalogSource   = "SHOPSEARCH_CATALOG_SOURCE"
	EnvCatalogPath     = "SHOPSEARCH_CATALOG_PATH"
	EnvDebounce        = "SHOPSEARCH_DEBOUNCE"
	EnvHTTPAddr        = "SHOPSEARCH_HTTP_ADDR"
	EnvLogLevel        = "SHOPSEARCH_LOG_LEVEL"
	EnvLogFormat       = "SHOPSEARCH_LOG_FORMAT"
	EnvHistoryProvider = "SHOPSEARCH_HISTORY_PROVIDER"
	EnvPostgresDSN     = "DATABASE_URL"
	EnvRedisAddr       = "REDIS_ADDR"
	EnvRedisUser       = "REDIS_USER"
	EnvRedisPassword   = "REDIS_PASSWORD"
	EnvRedisDB         = "REDIS_DB_ID"
	EnvRedisTimeout    = "REDIS_TIMEOUT"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none)
// into the process environment. Variables already set are left alone, and
// a missing file is not an error.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			log.Warnf("Failed to read %s: %v", p, err)
		}
	}
}

// ApplyEnv overlays environment variables on cfg. Malformed values are
// logged and ignored, keeping whatever cfg already held.
func ApplyEnv(cfg *Config) {
	cfg.Catalog.Source = getEnvOrDefault(EnvCatalogSource, cfg.Catalog.Source)
	cfg.Catalog.Path = getEnvOrDefault(EnvCatalogPath, cfg.Catalog.Path)
	cfg.Server.HTTPAddr = getEnvOrDefault(EnvHTTPAddr, cfg.Server.HTTPAddr)
	cfg.Log.Level = getEnvOrDefault(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Format = getEnvOrDefault(EnvLogFormat, cfg.Log.Format)
	cfg.History.Provider = getEnvOrDefault(EnvHistoryProvider, cfg.History.Provider)
	cfg.Postgres.DSN = getEnvOrDefault(EnvPostgresDSN, cfg.Postgres.DSN)
	cfg.Redis.Addr = getEnvOrDefault(EnvRedisAddr, cfg.Redis.Addr)
	cfg.Redis.Username = getEnvOrDefault(EnvRedisUser, cfg.Redis.Username)
	cfg.Redis.Password = getEnvOrDefault(EnvRedisPassword, cfg.Redis.Password)

	if d, err := parseDurationEnv(EnvDebounce, cfg.Search.Debounce()); err != nil {
		log.Warnf("invalid %s: %v", EnvDebounce, err)
	} else {
		cfg.Search.DebounceMS = int(d / time.Millisecond)
	}

	if db, err := parseIntEnv(EnvRedisDB, cfg.Redis.DB); err != nil {
		log.Warnf("invalid %s: %v", EnvRedisDB, err)
	} else {
		cfg.Redis.DB = db
	}

	if d, err := parseDurationEnv(EnvRedisTimeout, cfg.Redis.Timeout()); err != nil {
		log.Warnf("invalid %s: %v", EnvRedisTimeout, err)
	} else {
		cfg.Redis.TimeoutMS = int(d / time.Millisecond)
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := getEnv(key); v != "" {
		return v
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := getEnv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}

// parseDurationEnv accepts Go durations ("250ms") or bare milliseconds ("250").
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	v := getEnv(key)
	if v == "" {
		return defaultValue, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}
