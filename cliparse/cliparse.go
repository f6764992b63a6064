package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port             int           `env:"PORT" envDefault:"3318"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	DatabaseType     string        `env:"DATABASE_TYPE" envDefault:"sqlite"`
	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	JoinCodeLength   int           `env:"JOIN_CODE_LENGTH" envDefault:"5"`
	JoinCodeAttempts int           `env:"JOIN_CODE_ATTEMPTS" envDefault:"10"`
}

// ParseFlags loads .env and environment defaults, then applies CLI overrides
func ParseFlags(args []string) (Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("livevote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Access token signing secret (prefer env)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "Access token lifetime")

	// Join code policy
	fs.IntVar(&cfg.JoinCodeLength, "code-length", cfg.JoinCodeLength, "Join code length")
	fs.IntVar(&cfg.JoinCodeAttempts, "code-attempts", cfg.JoinCodeAttempts, "Join code generation attempts before failing")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("token TTL must be positive")
	}
	if cfg.JoinCodeLength <= 0 {
		return Config{}, errors.New("join code length must be positive")
	}
	if cfg.JoinCodeAttempts <= 0 {
		return Config{}, errors.New("join code attempts must be positive")
	}

	return cfg, nil
}
