package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SLIP_ANALYZER_SERVER_ADDR
const EnvPrefix = "SLIP_ANALYZER"

// Config represents the complete service configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Teams    TeamsConfig    `mapstructure:"teams"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
}

// AnalysisConfig holds slip analysis limits and defaults
type AnalysisConfig struct {
	MaxInputChars   int           `mapstructure:"max_input_chars"`
	DefaultBankroll float64       `mapstructure:"default_bankroll"` // 0 = no default
	LookupTimeout   time.Duration `mapstructure:"lookup_timeout"`
}

// TeamsConfig selects the team stats sources
type TeamsConfig struct {
	FixtureEnabled bool   `mapstructure:"fixture_enabled"`
	PostgresDSN    string `mapstructure:"postgres_dsn"`
}

// RedisConfig holds the team stats cache configuration
type RedisConfig struct {
	URL string        `mapstructure:"url"` // empty disables the cache
	TTL time.Duration `mapstructure:"ttl"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BotToken   string        `mapstructure:"bot_token"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file and the environment.
// An empty path skips the file and uses defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8085")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://localhost:3001"})

	v.SetDefault("analysis.max_input_chars", 10000)
	v.SetDefault("analysis.default_bankroll", 0.0)
	v.SetDefault("analysis.lookup_timeout", "750ms")

	v.SetDefault("teams.fixture_enabled", true)
	v.SetDefault("teams.postgres_dsn", "")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl", "6h")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay", "1s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.read_timeout and server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}

	if c.Analysis.MaxInputChars < 1 || c.Analysis.MaxInputChars > 100000 {
		return fmt.Errorf("analysis.max_input_chars must be between 1 and 100000")
	}
	if c.Analysis.DefaultBankroll < 0 {
		return fmt.Errorf("analysis.default_bankroll must not be negative")
	}
	if c.Analysis.LookupTimeout <= 0 {
		return fmt.Errorf("analysis.lookup_timeout must be positive")
	}

	if c.Redis.URL != "" && c.Redis.TTL < time.Minute {
		return fmt.Errorf("redis.ttl must be at least 1 minute")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.MaxRetries < 1 {
			return fmt.Errorf("telegram.max_retries must be at least 1")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
