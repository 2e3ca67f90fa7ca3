// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "SITE"

type Config struct {
	App AppConfig
	DB  DBConfig
}

type AppConfig struct {
	Env       string `envconfig:"SITE_APP_ENV" default:"dev"`
	Port      string `envconfig:"SITE_APP_PORT" default:"8080"`
	LogLevel  string `envconfig:"SITE_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"SITE_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

type DBConfig struct {
	DSN             string        `envconfig:"SITE_DB_DSN" required:"true"`
	MaxOpenConns    int           `envconfig:"SITE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SITE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SITE_DB_CONN_MAX_LIFETIME" default:"30m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
