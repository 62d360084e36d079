// Package config loads server settings from the environment and, optionally,
// a YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/dfryer1193/goslider/shared/db/sqlite"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPPort    int           `yaml:"http_port" env:"HTTP_PORT" env-default:"8080"`
	ImageDir    string        `yaml:"image_dir" env:"IMAGE_DIR" env-default:"./images"`
	SiteURL     string        `yaml:"site_url" env:"SITE_URL" env-default:"http://localhost:8080"`
	SecretKey   string        `yaml:"secret_key" env:"SECRET_KEY" env-required:"true"`
	SessionTTL  time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"12h"`
	NonceTTL    time.Duration `yaml:"nonce_ttl" env:"NONCE_TTL" env-default:"24h"`
	LogLevel    string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat   string        `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	CORSOrigins []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"*"`

	SQLite sqlite.SQLiteConfig `yaml:"sqlite"`
}

// Load reads the configuration from path when it is set, then from the
// environment. Environment variables win over the file.
func Load(path string) (*Config, error) {
	var cfg Config

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP_PORT %d", cfg.HTTPPort)
	}
	if cfg.SessionTTL <= 0 || cfg.NonceTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL and NONCE_TTL must be positive")
	}

	return &cfg, nil
}
