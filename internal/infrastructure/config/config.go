package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8081"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session  SessionConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type SessionConfig struct {
	// Secret signs the console session cookie.
	Secret string `env:"SESSION_SECRET"`
	// TTL bounds both the cookie and the stored session.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
	// Store selects the durable backend: redis or file.
	Store string `env:"SESSION_STORE, default=redis"`
	// Dir is the session directory for the file backend.
	Dir string `env:"SESSION_DIR, default=.mess-console/sessions"`
}

type UpstreamConfig struct {
	// BaseURL is the Mess Management backend the gateway talks to.
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=30s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mess_console"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
