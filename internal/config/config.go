package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// API key env names checked in order. The first non-empty one wins.
var apiKeyEnvVars = []string{"BRIGHTSIDE_API_KEY", "OPENAI_API_KEY", "API_KEY"}

type Config struct {
	Addr      string        `env:"ADDR"       envDefault:":8080"`
	DBPath    string        `env:"DB_PATH"    envDefault:"brightside.sqlite"`
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"  envDefault:"24h"`

	// APIKey is resolved separately, see apiKeyEnvVars.
	APIKey string `env:"-"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	cfg.APIKey = resolveAPIKey()

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func resolveAPIKey() string {
	for _, name := range apiKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
