package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL     string        `env:"REKATRACK_API,         default=https://rekatrack.ptrekaindo.co.id/api"`
	RequestTimeout time.Duration `env:"REKATRACK_TIMEOUT,     default=15s"`
	SessionDir     string        `env:"REKATRACK_SESSION_DIR, default=.rekatrack"`
	LogLevel       string        `env:"LOG_LEVEL,  default=info"`
	LogPretty      bool          `env:"LOG_PRETTY, default=true"`

	Tracer  TracerConfig
	Metrics MetricsConfig
}

// TracerConfig tunes the live location reporter.
type TracerConfig struct {
	DistanceMeters float64       `env:"TRACER_DISTANCE_METERS, default=100"`
	RetryAttempts  int           `env:"TRACER_RETRY_ATTEMPTS,  default=3"`
	RetryDelay     time.Duration `env:"TRACER_RETRY_DELAY,     default=5s"`
	ReplayInterval time.Duration `env:"TRACER_REPLAY_INTERVAL, default=1s"`
}

type MetricsConfig struct {
	Addr string `env:"METRICS_ADDR, default=:9464"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
