// Package config loads command line tool settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Common holds settings every tool reads.
type Common struct {
	LogLevel string `env:"RNG_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"RNG_LOG_JSON" envDefault:"false"`
}

// Collect holds the defaults of cmd/collect.
type Collect struct {
	Common
	Device          string `env:"RNG_DEVICE" envDefault:"rdrand"`
	Bits            int    `env:"RNG_BITS" envDefault:"2048"`
	IntervalSeconds int    `env:"RNG_INTERVAL_SECONDS" envDefault:"1"`
	OutDir          string `env:"RNG_OUTDIR" envDefault:"data"`
}

// Read holds the defaults of cmd/rdread. A zero Interval means one read.
type Read struct {
	Common
	Device   string        `env:"RNG_DEVICE" envDefault:"rdrand"`
	Bits     int           `env:"RNG_BITS" envDefault:"1024"`
	Interval time.Duration `env:"RNG_READ_INTERVAL" envDefault:"0s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
