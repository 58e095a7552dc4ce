// Package config loads kwic's runtime configuration via viper, the way
// the rest of the domain stack expects it: a YAML file overridden by
// environment variables, with sane defaults for every knob.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is kwic's full runtime configuration.
type Config struct {
	Corpus  CorpusConfig  `mapstructure:"corpus"`
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CorpusConfig binds the per-corpus settings spec.md §9 requires be
// explicit configuration rather than process globals.
type CorpusConfig struct {
	// Source is either "jsonl" (one JSON document per line) or "sql".
	Source string `mapstructure:"source"`
	// Path is the JSON-lines file path when Source is "jsonl".
	Path string `mapstructure:"path"`
	// DSN is the database connection string when Source is "sql".
	DSN string `mapstructure:"dsn"`
	// Driver selects "postgres" or "sqlite3" when Source is "sql".
	Driver      string `mapstructure:"driver"`
	TextField   string `mapstructure:"text_field"`
	DefaultAttr string `mapstructure:"default_attr"`
	MaxQuant    int    `mapstructure:"max_quant"`
}

// ServerConfig configures the HTTP search API.
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Host            string `mapstructure:"host"`
	APIPrefix       string `mapstructure:"api_prefix"`
	DefaultLeft     int    `mapstructure:"default_left"`
	DefaultRight    int    `mapstructure:"default_right"`
	MaxPageSize     int    `mapstructure:"max_page_size"`
}

// RedisConfig configures the search-result cache.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	DB   int    `mapstructure:"db"`
	TTL  int    `mapstructure:"ttl_seconds"`
}

// AuthConfig configures JWT verification for the search API.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Load reads kwic.yml/kwic.yaml (if present), layers in KWIC_-prefixed
// environment variables, and returns the resolved Config.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("corpus.source", "jsonl")
	v.SetDefault("corpus.default_attr", "word")
	v.SetDefault("corpus.max_quant", 6)
	v.SetDefault("corpus.driver", "sqlite3")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.api_prefix", "/v1")
	v.SetDefault("server.default_left", 5)
	v.SetDefault("server.default_right", 5)
	v.SetDefault("server.max_page_size", 100)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_seconds", 300)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)

	v.SetConfigName("kwic")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("KWIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Corpus.Source {
	case "jsonl", "sql":
	default:
		return fmt.Errorf("corpus.source must be 'jsonl' or 'sql', got %q", cfg.Corpus.Source)
	}
	if cfg.Corpus.MaxQuant < 1 {
		return fmt.Errorf("corpus.max_quant must be >= 1, got %d", cfg.Corpus.MaxQuant)
	}
	if cfg.Server.APIPrefix != "" {
		if !strings.HasPrefix(cfg.Server.APIPrefix, "/") {
			return fmt.Errorf("server.api_prefix must start with '/', got: %s", cfg.Server.APIPrefix)
		}
		if strings.HasSuffix(cfg.Server.APIPrefix, "/") && cfg.Server.APIPrefix != "/" {
			return fmt.Errorf("server.api_prefix must not end with '/', got: %s", cfg.Server.APIPrefix)
		}
	}
	return nil
}
