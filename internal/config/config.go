// Package config handles configuration loading for Equibull.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBackendURL is the production recommendation backend.
const DefaultBackendURL = "https://stock-recommendation-website-production.up.railway.app"

// News provider names.
const (
	ProviderBackend = "backend"
	ProviderRSS     = "rss"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
	Backend  BackendConfig  `mapstructure:"backend"  yaml:"backend"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BackendConfig points at the recommendation backend.
type BackendConfig struct {
	URL        string `mapstructure:"url"         yaml:"url"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// Timeout returns the HTTP client timeout; zero means none.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSec) * time.Second
}

// FeedConfig is one RSS source used by the rss news provider.
type FeedConfig struct {
	Name string `mapstructure:"name" yaml:"name" json:"name"`
	URL  string `mapstructure:"url"  yaml:"url"  json:"url"`
}

// NewsConfig controls where news comes from and how much is shown.
type NewsConfig struct {
	Provider string       `mapstructure:"provider"  yaml:"provider"`  // "backend" or "rss"
	Limit    int          `mapstructure:"limit"     yaml:"limit"`     // articles on the home page
	CacheTTL int          `mapstructure:"cache_ttl" yaml:"cache_ttl"` // seconds, 0 disables
	Feeds    []FeedConfig `mapstructure:"feeds"     yaml:"feeds"`
}

// CacheDuration returns CacheTTL as a time.Duration.
func (n NewsConfig) CacheDuration() time.Duration {
	return time.Duration(n.CacheTTL) * time.Second
}

// AnalysisConfig holds the stock search settings.
type AnalysisConfig struct {
	DelayMS int `mapstructure:"delay_ms" yaml:"delay_ms"`
}

// Delay returns DelayMS as a time.Duration.
func (a AnalysisConfig) Delay() time.Duration {
	return time.Duration(a.DelayMS) * time.Millisecond
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.equibull/config.yaml (home directory)
//  3. /etc/equibull/config.yaml (system)
//
// Environment variables override config file values.
// Format: EQUIBULL_<SECTION>_<KEY>, e.g., EQUIBULL_BACKEND_URL
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".equibull"))
	v.AddConfigPath("/etc/equibull")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend.url %q: must be an absolute http(s) URL", c.Backend.URL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.News.Limit <= 0 {
		return fmt.Errorf("invalid news.limit %d: must be positive", c.News.Limit)
	}
	switch c.News.Provider {
	case ProviderBackend:
	case ProviderRSS:
		if len(c.News.Feeds) == 0 {
			return errors.New("news.provider is rss but news.feeds is empty")
		}
	default:
		return fmt.Errorf("unknown news.provider %q (want %q or %q)", c.News.Provider, ProviderBackend, ProviderRSS)
	}
	if c.News.CacheTTL < 0 || c.Analysis.DelayMS < 0 || c.Backend.TimeoutSec < 0 {
		return errors.New("cache_ttl, delay_ms and timeout_sec must not be negative")
	}
	return nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})

	// Backend defaults
	v.SetDefault("backend.url", DefaultBackendURL)
	v.SetDefault("backend.timeout_sec", 15)

	// News defaults
	v.SetDefault("news.provider", ProviderBackend)
	v.SetDefault("news.limit", 10)
	v.SetDefault("news.cache_ttl", 60)
	v.SetDefault("news.feeds", []map[string]any{
		{"name": "Moneycontrol", "url": "https://www.moneycontrol.com/rss/marketreports.xml"},
		{"name": "Economic Times Markets", "url": "https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms"},
		{"name": "LiveMint Markets", "url": "https://www.livemint.com/rss/markets"},
	})

	// Analysis defaults
	v.SetDefault("analysis.delay_ms", 1500)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
