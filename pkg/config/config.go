/*
Package config manages TOML config for shopsearch services.

Values are resolved in three layers: built-in defaults, the TOML file, then
environment variables (optionally read from a .env file). A malformed file
never stops the service; whatever sections still parse are kept and the rest
fall back to defaults.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/shopsearch/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Search   SearchConfig   `toml:"search"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Server   ServerConfig   `toml:"server"`
	History  HistoryConfig  `toml:"history"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	Log      LogConfig      `toml:"log"`
	CLI      CliConfig      `toml:"cli"`
}

// Catalog sources and history providers.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	ProviderStatic = "static"
	ProviderRedis  = "redis"
)

// SearchConfig has search box options.
type SearchConfig struct {
	DebounceMS       int `toml:"debounce_ms"`
	SuggestCacheSize int `toml:"suggest_cache_size"`
	NewArrivals      int `toml:"new_arrivals"`
}

// CatalogConfig selects where the catalog is loaded from: "file" or "postgres".
type CatalogConfig struct {
	Source string `toml:"source"`
	Path   string `toml:"path"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	HTTPAddr          string `toml:"http_addr"`
	ReadTimeoutMS     int    `toml:"read_timeout_ms"`
	WriteTimeoutMS    int    `toml:"write_timeout_ms"`
	IdleTimeoutMS     int    `toml:"idle_timeout_ms"`
	ShutdownTimeoutMS int    `toml:"shutdown_timeout_ms"`
}

// HistoryConfig selects the recent/trending provider: "static" or "redis".
type HistoryConfig struct {
	Provider       string   `toml:"provider"`
	Recent         []string `toml:"recent"`
	Trending       []string `toml:"trending"`
	RefreshSeconds int      `toml:"refresh_seconds"`
}

// PostgresConfig holds catalog database options.
type PostgresConfig struct {
	DSN              string `toml:"dsn"`
	ConnectTimeoutMS int    `toml:"connect_timeout_ms"`
}

// RedisConfig holds analytics store options.
type RedisConfig struct {
	Addr          string `toml:"addr"`
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	DB            int    `toml:"db"`
	RecentKey     string `toml:"recent_key"`
	TrendingKey   string `toml:"trending_key"`
	Limit         int    `toml:"limit"`
	MaxRetries    int    `toml:"max_retries"`
	DialTimeoutMS int    `toml:"dial_timeout_ms"`
	TimeoutMS     int    `toml:"timeout_ms"`
}

// LogConfig holds logging options. Format is "text", "json" or "logfmt".
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	MaxResults       int  `toml:"max_results"`
	ShowDescriptions bool `toml:"show_descriptions"`
}

// Debounce returns the search box quiet period.
func (s SearchConfig) Debounce() time.Duration {
	return ms(s.DebounceMS)
}

func (s ServerConfig) ReadTimeout() time.Duration     { return ms(s.ReadTimeoutMS) }
func (s ServerConfig) WriteTimeout() time.Duration    { return ms(s.WriteTimeoutMS) }
func (s ServerConfig) IdleTimeout() time.Duration     { return ms(s.IdleTimeoutMS) }
func (s ServerConfig) ShutdownTimeout() time.Duration { return ms(s.ShutdownTimeoutMS) }

// RefreshInterval returns how often history is re-read; zero disables refreshing.
func (h HistoryConfig) RefreshInterval() time.Duration {
	return time.Duration(h.RefreshSeconds) * time.Second
}

func (p PostgresConfig) ConnectTimeout() time.Duration { return ms(p.ConnectTimeoutMS) }

func (r RedisConfig) DialTimeout() time.Duration { return ms(r.DialTimeoutMS) }
func (r RedisConfig) Timeout() time.Duration     { return ms(r.TimeoutMS) }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			DebounceMS:       300,
			SuggestCacheSize: 256,
			NewArrivals:      12,
		},
		Catalog: CatalogConfig{
			Source: SourceFile,
			Path:   "data/catalog.toml",
		},
		Server: ServerConfig{
			HTTPAddr:          ":8080",
			ReadTimeoutMS:     5000,
			WriteTimeoutMS:    10000,
			IdleTimeoutMS:     60000,
			ShutdownTimeoutMS: 10000,
		},
		History: HistoryConfig{
			Provider: ProviderStatic,
			Recent:   []string{"wireless earbuds", "kitchen organizer", "travel backpack"},
			Trending: []string{"smart watch", "led lights", "phone holder", "desk lamp"},
		},
		Postgres: PostgresConfig{
			ConnectTimeoutMS: 5000,
		},
		Redis: RedisConfig{
			Addr:          "localhost:6379",
			RecentKey:     "shopsearch:recent",
			TrendingKey:   "shopsearch:trending",
			Limit:         5,
			MaxRetries:    3,
			DialTimeoutMS: 2000,
			TimeoutMS:     500,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		CLI: CliConfig{
			MaxResults:       10,
			ShowDescriptions: false,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppDirName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppDirName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/shopsearch/config.toml
// 3. Builtin defaults
// Environment overrides are applied on top in every case.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	config, path := loadFile(customConfigPath)
	ApplyEnv(config)
	config.Sanitize()
	return config, path, nil
}

func loadFile(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), ""
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// Sanitize replaces values that cannot work with their defaults.
func (c *Config) Sanitize() {
	def := DefaultConfig()
	if c.Search.DebounceMS <= 0 {
		log.Warnf("search.debounce_ms must be positive, using %d", def.Search.DebounceMS)
		c.Search.DebounceMS = def.Search.DebounceMS
	}
	if c.Search.SuggestCacheSize < 0 {
		c.Search.SuggestCacheSize = 0
	}
	if c.Search.NewArrivals <= 0 {
		c.Search.NewArrivals = def.Search.NewArrivals
	}
	switch c.Catalog.Source {
	case SourceFile, SourcePostgres:
	default:
		log.Warnf("Unknown catalog.source %q, using %q", c.Catalog.Source, def.Catalog.Source)
		c.Catalog.Source = def.Catalog.Source
	}
	switch c.History.Provider {
	case ProviderStatic, ProviderRedis:
	default:
		log.Warnf("Unknown history.provider %q, using %q", c.History.Provider, def.History.Provider)
		c.History.Provider = def.History.Provider
	}
	if c.History.RefreshSeconds < 0 {
		c.History.RefreshSeconds = 0
	}
	if c.Redis.Limit <= 0 {
		c.Redis.Limit = def.Redis.Limit
	}
	if c.CLI.MaxResults <= 0 {
		c.CLI.MaxResults = def.CLI.MaxResults
	}
	if c.Server.ShutdownTimeoutMS <= 0 {
		c.Server.ShutdownTimeoutMS = def.Server.ShutdownTimeoutMS
	}
}
