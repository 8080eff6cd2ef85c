package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// SecretKey signs every issued token. Required.
	SecretKey string `env:"AUTH_SECRET_KEY"`

	AccessTokenTTL  time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTokenTTL time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" envDefault:"336h"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`

	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	RedisDialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	RedisReadTimeout time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@brandu.dev"`

	// OAuthRedirectURL, when set, makes the OAuth login endpoint answer with
	// a 302 to this URL carrying the tokens as query parameters.
	OAuthRedirectURL string `env:"OAUTH_REDIRECT_URL"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig parses configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run safely with. A
// missing signing key or a zero access TTL would issue tokens that either
// cannot be verified or never expire, so both are startup failures.
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("config: AUTH_SECRET_KEY is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("config: AUTH_ACCESS_TOKEN_TTL must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return errors.New("config: AUTH_REFRESH_TOKEN_TTL must be positive")
	}
	return nil
}
