package config

import (
	"fmt"
	"time"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServiceConfig struct {
	Name      string `mapstructure:"name"`
	Env       string `mapstructure:"env"`
	Port      string `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

type DatabaseConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	Password    string        `mapstructure:"password"`
	Name        string        `mapstructure:"name"`
	SSLMode     string        `mapstructure:"sslmode"`
	PingTimeout time.Duration `mapstructure:"ping_timeout"`
}

// DSN assembles the connection string from the individual store
// settings supplied through the environment or the config file.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TelemetryConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}
