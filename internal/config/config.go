// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration, read from the environment (and .env when present).
type Config struct {
	Env  string `env:"ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"5000"`

	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PG_HOST" envDefault:"localhost"`
	PGPort      string `env:"PG_PORT" envDefault:"5432"`
	PGUser      string `env:"POSTGRES_USER" envDefault:"postgres"`
	PGPassword  string `env:"POSTGRES_PASSWORD"`
	PGDatabase  string `env:"PG_DATABASE" envDefault:"pushups"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// TokenExpireTime of 0 issues tokens that never expire.
	TokenExpireTime   time.Duration `env:"TOKEN_EXPIRE_TIME" envDefault:"168h"`
	JWTPrivateKeyPath string        `env:"JWT_PRIVATE_KEY_PATH"`

	StaticDir      string   `env:"STATIC_DIR"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	HistorianQueueName string `env:"HISTORIAN_QUEUE_NAME" envDefault:"pushup_rank_events"`
	HistorianBatchSize int    `env:"HISTORIAN_BATCH_SIZE" envDefault:"20"`
	HistorianFlushMs   int    `env:"HISTORIAN_FLUSH_MS" envDefault:"500"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads .env files (if any) into the environment and parses Config.
// Variables already set in the environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TokenExpireTime < 0 {
		return fmt.Errorf("TOKEN_EXPIRE_TIME must not be negative")
	}
	if c.HistorianBatchSize < 1 {
		return fmt.Errorf("HISTORIAN_BATCH_SIZE must be at least 1")
	}
	if c.HistorianFlushMs < 1 {
		return fmt.Errorf("HISTORIAN_FLUSH_MS must be at least 1")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Production reports whether the service runs in production mode.
func (c Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

// PostgresURL returns DATABASE_URL when set, otherwise a URL built from the PG_* parts.
func (c Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   c.PGHost + ":" + c.PGPort,
		Path:   "/" + c.PGDatabase,
	}
	if c.PGPassword != "" {
		u.User = url.UserPassword(c.PGUser, c.PGPassword)
	} else {
		u.User = url.User(c.PGUser)
	}
	return u.String()
}

// FlushDelay is HistorianFlushMs as a duration.
func (c Config) FlushDelay() time.Duration {
	return time.Duration(c.HistorianFlushMs) * time.Millisecond
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
