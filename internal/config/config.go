package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "CHECKOUT_"

type Config struct {
	Primary    Primary          `koanf:"primary"`
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Logger     LoggerConfig     `koanf:"logger"`
	PayPal     PayPalConfig     `koanf:"paypal"`
	Auth       AuthConfig       `koanf:"auth"`
	RateLimit  RateLimitConfig  `koanf:"rate_limit"`
	Redis      RedisConfig      `koanf:"redis"`
	Reconciler ReconcilerConfig `koanf:"reconciler"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
	// WebhookTimeout bounds webhook processing so the acknowledgement is
	// written before WriteTimeout closes the connection.
	WebhookTimeout time.Duration `koanf:"webhook_timeout"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// PayPalConfig holds the settings of the PayPal gateway. Credentials are
// validated by the gateway itself so a disabled gateway may leave them empty.
type PayPalConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Sandbox      bool          `koanf:"sandbox"`
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	BaseURL      string        `koanf:"base_url"`
	BrandName    string        `koanf:"brand_name"`
	ReturnURL    string        `koanf:"return_url"`
	CancelURL    string        `koanf:"cancel_url"`
	Timeout      time.Duration `koanf:"timeout"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret" validate:"required"`
	Issuer    string `koanf:"issuer"`
}

type RateLimitConfig struct {
	RPS   int `koanf:"rps"`
	Burst int `koanf:"burst"`
}

// RedisConfig is optional. An empty Addr disables the fingerprint lock.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	LockTTL  time.Duration `koanf:"lock_ttl"`
}

type ReconcilerConfig struct {
	Schedule  string `koanf:"schedule" validate:"required"`
	BatchSize int    `koanf:"batch_size" validate:"required"`
	// MinAge is how long a completed order is left to its own completion
	// call before the reconciler grants for it.
	MinAge time.Duration `koanf:"min_age"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// NewLogger builds the process logger. Format "text" selects the text
// handler, anything else emits JSON.
func (c LoggerConfig) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if strings.EqualFold(c.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func (c LoggerConfig) level() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	mainConfig.applyDefaults()

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.PayPal.Timeout == 0 {
		c.PayPal.Timeout = 30 * time.Second
	}
	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = 30 * time.Second
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.Reconciler.Schedule == "" {
		c.Reconciler.Schedule = "@every 5m"
	}
	if c.Reconciler.BatchSize == 0 {
		c.Reconciler.BatchSize = 50
	}
	if c.Reconciler.MinAge == 0 {
		c.Reconciler.MinAge = 2 * time.Minute
	}
	if c.Server.WebhookTimeout == 0 {
		c.Server.WebhookTimeout = c.Server.WriteTimeout / 2
	}
}
