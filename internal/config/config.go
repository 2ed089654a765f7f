package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:"app"`
	Server     Server     `mapstructure:"server"`
	Client     Client     `mapstructure:"client"`
	Postgres   Postgres   `mapstructure:"postgres"`
	Redis      Redis      `mapstructure:"redis"`
	RabbitMQ   RabbitMQ   `mapstructure:"rabbitmq"`
	Session    Session    `mapstructure:"session"`
	Suggestion Suggestion `mapstructure:"suggestion"`
}

type App struct {
	Env string `mapstructure:"env"`
}

func (a App) Development() bool {
	return a.Env == "development"
}

type Server struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Client struct {
	Origin string `mapstructure:"origin"`
}

type Postgres struct {
	DSN string `mapstructure:"dsn"`
}

type Redis struct {
	Addr      string        `mapstructure:"addr"`
	DB        int           `mapstructure:"db"`
	Password  string        `mapstructure:"password"`
	UserIDTTL time.Duration `mapstructure:"user_id_ttl"`
}

type RabbitMQ struct {
	URL string `mapstructure:"url"`
}

type Session struct {
	Secret string `mapstructure:"secret"`
}

var ErrMissingSessionSecret = errors.New("SESSION_SECRET is not set")

// RequireSecret fails when no signing secret is configured.
func (s Session) RequireSecret() error {
	if strings.TrimSpace(s.Secret) == "" {
		return ErrMissingSessionSecret
	}
	return nil
}

type Suggestion struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

// Load reads app.yaml from dir and overlays secrets from dir/.env and the environment.
// A missing .env file is not an error.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(dir + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigType("yaml")
	v.SetConfigName("app")

	v.SetDefault("app.env", "production")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("client.origin", "http://localhost:3000")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.user_id_ttl", 24*time.Hour)
	v.SetDefault("suggestion.default_limit", 3)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Secrets live in .env under their conventional names.
	cfg.Postgres.DSN = envOr("POSTGRES_DSN", cfg.Postgres.DSN)
	cfg.Redis.Password = envOr("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.RabbitMQ.URL = envOr("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.Session.Secret = envOr("SESSION_SECRET", cfg.Session.Secret)

	return &cfg, nil
}

func envOr(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
