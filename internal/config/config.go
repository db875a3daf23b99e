package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	APIBaseURL     string        `env:"STOREPULSE_API_URL" envDefault:"http://localhost:3001/api"`
	RequestTimeout time.Duration `env:"STOREPULSE_TIMEOUT" envDefault:"30s"`
	DataDir        string        `env:"STOREPULSE_DATA_DIR" envDefault:""`
	RedisAddr      string        `env:"STOREPULSE_REDIS_ADDR"` // when set, credentials live in Redis instead of the data dir
	Profile        string        `env:"STOREPULSE_PROFILE" envDefault:"default"`
	LogLevel       string        `env:"STOREPULSE_LOG_LEVEL" envDefault:"info"`
	MetricsAddr    string        `env:"STOREPULSE_METRICS_ADDR" envDefault:":9464"`
	WatchInterval  time.Duration `env:"STOREPULSE_WATCH_INTERVAL" envDefault:"60s"`
	RateLimitRPS   float64       `env:"STOREPULSE_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int           `env:"STOREPULSE_RATE_LIMIT_BURST" envDefault:"20"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// .env file is optional, mainly for local development
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
