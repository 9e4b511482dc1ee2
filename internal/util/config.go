package util

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const DefaultSaveLocation = "data/save.json"

// Config holds runtime settings. Environment first, flags override in main.
type Config struct {
	Save     string `env:"CASTAWAY_SAVE" envDefault:"data/save.json"`
	Seed     string `env:"CASTAWAY_SEED"`
	Theme    string `env:"CASTAWAY_THEME" envDefault:"lagoon"`
	LogFile  string `env:"CASTAWAY_LOG_FILE"`
	LogLevel string `env:"CASTAWAY_LOG_LEVEL" envDefault:"info"`
	Plain    bool   `env:"CASTAWAY_PLAIN"`
}

// ParseEnv fills target from the process environment.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Save == "" {
		cfg.Save = DefaultSaveLocation
	}
	return cfg, nil
}
