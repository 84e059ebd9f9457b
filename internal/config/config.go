// Package config loads process configuration. Values come from the
// environment first, with an optional config file underneath and safe
// development defaults at the bottom.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const (
	defaultPort     = 5000
	defaultMongoURI = "mongodb://localhost:27017/projectflow"

	// defaultJWTSecret matches the original development default. It must
	// be overridden in production.
	defaultJWTSecret = "secret123"
)

// Config is the process configuration.
type Config struct {
	Environment string
	Port        int
	MongoURI    string
	JWTSecret   string
	SentryDSN   string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from the environment and, when present, a config
// file. An explicit path that cannot be read is an error; the implicit
// ./config.yaml is optional.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("node_env", "development")
	v.SetDefault("port", defaultPort)
	v.SetDefault("mongo_uri", defaultMongoURI)
	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return &Config{
		Environment: v.GetString("node_env"),
		Port:        v.GetInt("port"),
		MongoURI:    v.GetString("mongo_uri"),
		JWTSecret:   v.GetString("jwt_secret"),
		SentryDSN:   v.GetString("sentry_dsn"),
		LogLevel:    v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
	}, nil
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// InsecureJWTSecret reports whether the signing key is still the
// development default.
func (c *Config) InsecureJWTSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
