package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration read from the environment. Command-line
// flags take precedence over it.
type Env struct {
	DB        string `env:"BATTLESIM_DB"`
	Data      string `env:"BATTLESIM_DATA" envDefault:"data"`
	Workers   int    `env:"BATTLESIM_WORKERS" envDefault:"4"`
	LogLevel  string `env:"BATTLESIM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"BATTLESIM_LOG_FORMAT" envDefault:"text"`
	Seed      int64  `env:"BATTLESIM_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
