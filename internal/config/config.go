// internal/config/config.go
//
// Process configuration read from the environment.
// A .env file in the working directory, if present, is loaded first; real
// environment variables win over it.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DevJWTSecret is the signing key used when JWT_SECRET is unset.
const DevJWTSecret = "dev_secret_change_me"

// Config holds every tunable of the server and CLI.
type Config struct {
	Port     string `env:"PORT"      envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV"   envDefault:"development"`
	DBPath   string `env:"DB_PATH"   envDefault:"./data/app.db"`

	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME"      envDefault:"wordle_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`

	DailySalt        string `env:"DAILY_SALT"         envDefault:"local_dev_salt"`
	WordsAnswersFile string `env:"WORDS_ANSWERS_FILE"`
	WordsAllowedFile string `env:"WORDS_ALLOWED_FILE"`
	MaxAttempts      int    `env:"MAX_ATTEMPTS"       envDefault:"6"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	RemoteURL     string        `env:"REMOTE_URL"`
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" envDefault:"5s"`

	SessionIdle time.Duration `env:"SESSION_IDLE" envDefault:"24h"`
}

// Load reads .env (best effort) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts))
	}
	if c.JWTExpiresDays < 1 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_DAYS must be at least 1, got %d", c.JWTExpiresDays))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.SessionIdle <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_IDLE must be positive, got %s", c.SessionIdle))
	}
	if c.Production() && c.JWTSecret == DevJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	return errors.Join(errs...)
}

// Production reports whether APP_ENV is "production".
func (c Config) Production() bool { return c.AppEnv == "production" }

// Level parses LogLevel, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// JWTTTL is the auth token lifetime.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}
