package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration with environment values taking precedence
// over config.json, which in turn takes precedence over the built-in
// defaults. A missing config file is fine; a malformed one is not.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("service.name", "chatrelay")
	v.SetDefault("service.env", "development")
	v.SetDefault("service.port", "3001")
	v.SetDefault("service.static_dir", "./static")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "chatrelay")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "chatrelay")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.ping_timeout", 5*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("telemetry.endpoint", "")

	// Environment names kept compatible with the deployment this
	// service replaces.
	bindings := map[string]string{
		"service.port":       "PORT",
		"service.static_dir": "STATIC_DIR",
		"database.host":      "DB_HOST",
		"database.port":      "DB_PORT",
		"database.user":      "DB_USER",
		"database.password":  "DB_PASSWORD",
		"database.name":      "DB_NAME",
		"database.sslmode":   "DB_SSLMODE",
		"logger.level":       "LOG_LEVEL",
		"logger.format":      "LOG_FORMAT",
		"telemetry.endpoint": "OTEL_ENDPOINT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
