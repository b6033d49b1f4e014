package config

import (
	"github.com/bastiangx/shopsearch/internal/utils"
	"github.com/charmbracelet/log"
)

// tryPartialParse recovers what it can from a file whose values do not fit
// Config, such as a string where a number belongs. Keys with the wrong type
// keep their defaults.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "catalog"); ok {
		extractCatalogConfig(section, &config.Catalog)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "history"); ok {
		extractHistoryConfig(section, &config.History)
	}
	if section, ok := utils.ExtractSection(tempConfig, "postgres"); ok {
		extractPostgresConfig(section, &config.Postgres)
	}
	if section, ok := utils.ExtractSection(tempConfig, "redis"); ok {
		extractRedisConfig(section, &config.Redis)
	}
	if section, ok := utils.ExtractSection(tempConfig, "log"); ok {
		extractLogConfig(section, &config.Log)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractDuration(data, "debounce_ms"); ok {
		search.DebounceMS = int(val.Milliseconds())
	}
	if val, ok := utils.ExtractInt64(data, "suggest_cache_size"); ok {
		search.SuggestCacheSize = val
	}
	if val, ok := utils.ExtractInt64(data, "new_arrivals"); ok {
		search.NewArrivals = val
	}
}

func extractCatalogConfig(data map[string]any, catalog *CatalogConfig) {
	if val, ok := utils.ExtractString(data, "source"); ok {
		catalog.Source = val
	}
	if val, ok := utils.ExtractString(data, "path"); ok {
		catalog.Path = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractString(data, "http_addr"); ok {
		server.HTTPAddr = val
	}
	if val, ok := utils.ExtractDuration(data, "read_timeout_ms"); ok {
		server.ReadTimeoutMS = int(val.Milliseconds())
	}
	if val, ok := utils.ExtractDuration(data, "write_timeout_ms"); ok {
		server.WriteTimeoutMS = int(val.Milliseconds())
	}
	if val, ok := utils.ExtractDuration(data, "idle_timeout_ms"); ok {
		server.IdleTimeoutMS = int(val.Milliseconds())
	}
	if val, ok := utils.ExtractDuration(data, "shutdown_timeout_ms"); ok {
		server.ShutdownTimeoutMS = int(val.Milliseconds())
	}
}

func extractHistoryConfig(data map[string]any, history *HistoryConfig) {
	if val, ok := utils.ExtractString(data, "provider"); ok {
		history.Provider = val
	}
	if val, ok := utils.ExtractStrings(data, "recent"); ok {
		history.Recent = val
	}
	if val, ok := utils.ExtractStrings(data, "trending"); ok {
		history.Trending = val
	}
	if val, ok := utils.ExtractInt64(data, "refresh_seconds"); ok {
		history.RefreshSeconds = val
	}
}

func extractPostgresConfig(data map[string]any, pg *PostgresConfig) {
	if val, ok := utils.ExtractString(data, "dsn"); ok {
		pg.DSN = val
	}
	if val, ok := utils.ExtractDuration(data, "connect_timeout_ms"); ok {
		pg.ConnectTimeoutMS = int(val.Milliseconds())
	}
}

func extractRedisConfig(data map[string]any, redis *RedisConfig) {
	if val, ok := utils.ExtractString(data, "addr"); ok {
		redis.Addr = val
	}
	if val, ok := utils.ExtractString(data, "username"); ok {
		redis.Username = val
	}
	if val, ok := utils.ExtractString(data, "password"); ok {
		redis.Password = val
	}
	if val, ok := utils.ExtractInt64(data, "db"); ok {
		redis.DB = val
	}
	if val, ok := utils.ExtractString(data, "recent_key"); ok {
		redis.RecentKey = val
	}
	if val, ok := utils.ExtractString(data, "trending_key"); ok {
		redis.TrendingKey = val
	}
	if val, ok := utils.ExtractInt64(data, "limit"); ok {
		redis.Limit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_retries"); ok {
		redis.MaxRetries = val
	}
	if val, ok := utils.ExtractDuration(data, "dial_timeout_ms"); ok {
		redis.DialTimeoutMS = int(val.Milliseconds())
	}
	if val, ok := utils.ExtractDuration(data, "timeout_ms"); ok {
		redis.TimeoutMS = int(val.Milliseconds())
	}
}

func extractLogConfig(data map[string]any, l *LogConfig) {
	if val, ok := utils.ExtractString(data, "level"); ok {
		l.Level = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		l.Format = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		cli.MaxResults = val
	}
	if val, ok := utils.ExtractBool(data, "show_descriptions"); ok {
		cli.ShowDescriptions = val
	}
}
