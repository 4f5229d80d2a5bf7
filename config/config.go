package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the server. Tags use
// mapstructure for viper unmarshalling; every key can be set via
// environment variable of the same name.
type ServerConfig struct {
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogPretty   bool   `mapstructure:"LOG_PRETTY"`

	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// AppEnv gates development-only behavior (pretty logs, origin
	// host trust on redirects). "development" or "production".
	AppEnv string `mapstructure:"APP_ENV"`

	// PublicBaseURL is the externally visible origin of the app,
	// used for building portal share links.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	// AdminEmail is a single-tenant allowlist. Empty disables the
	// allowlist entirely.
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`

	// Identity provider (Supabase-style auth). Both are required for
	// the OAuth callback to function at all.
	AuthURL     string `mapstructure:"AUTH_URL"`
	AuthAnonKey string `mapstructure:"AUTH_ANON_KEY"`

	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`

	// RedisAddr, when set, switches the session verification cache
	// from in-process memory to redis.
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	ScrapeTimeoutSeconds int `mapstructure:"SCRAPE_TIMEOUT_SECONDS"`
}

// IsDevelopment reports whether the server runs in development mode.
func (c *ServerConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// LoadConfig reads configuration from file, environment variables,
// and defaults, in that order of precedence (env wins over file).
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/mission-control/")
	v.AddConfigPath("$HOME/.mission-control")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/mission_control_dev")
	v.SetDefault("MONGO_DB_NAME", "mission_control_dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("OTEL_SERVICE_NAME", "mission-control")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("SCRAPE_TIMEOUT_SECONDS", 12)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults carry.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
