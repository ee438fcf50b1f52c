package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MaxDeclaredUsers is how many USER_n environment variables are checked.
const MaxDeclaredUsers = 10

// Config holds the server configuration, loaded from the environment.
type Config struct {
	Port           int    `env:"PORT" envDefault:"8888"`
	DBPath         string `env:"QUICKSAVE_DB" envDefault:"data/quicksave.db"`
	SecretKey      string `env:"APP_SECRET_KEY"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50 MiB
	LogFile        string `env:"LOG_FILE"`
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// DeclaredUsers reads USER_1..USER_10 from the environment and returns the
// declared username -> password map. Each value is split on the FIRST
// colon; unset variables and values without a colon are skipped.
func DeclaredUsers() map[string]string {
	users := make(map[string]string)
	for i := 1; i <= MaxDeclaredUsers; i++ {
		value := os.Getenv(fmt.Sprintf("USER_%d", i))
		if value == "" {
			continue
		}
		username, password, ok := strings.Cut(value, ":")
		if !ok || username == "" {
			continue
		}
		users[username] = password
	}
	return users
}
