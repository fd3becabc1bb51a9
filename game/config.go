package game

import (
	"errors"
	"fmt"
	"os"

	"chessArena/bots"
	"chessArena/rules"

	"gopkg.in/yaml.v3"
)

// Config describes an arena run between two presets.
type Config struct {
	// White and Black are preset names from bots.Names(). With
	// AlternateColors they swap sides every other game.
	White string `yaml:"white"`
	Black string `yaml:"black"`

	Games           int    `yaml:"games"`
	Concurrency     int    `yaml:"concurrency"`
	MaxPlies        int    `yaml:"max_plies"`
	StartFEN        string `yaml:"start_fen"`
	AlternateColors bool   `yaml:"alternate_colors"`

	// Seed fixes every bot's tie-breaking when non-zero.
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		White:           "Swarm",
		Black:           "Random",
		Games:           1,
		Concurrency:     1,
		MaxPlies:        400,
		AlternateColors: true,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	for _, name := range []string{c.White, c.Black} {
		if _, ok := bots.Lookup(name); !ok {
			errs = append(errs, fmt.Errorf("unknown preset %q", name))
		}
	}
	if c.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if c.StartFEN != "" {
		if _, err := rules.FromFEN(c.StartFEN); err != nil {
			errs = append(errs, err)
		}
	}
	if c.MaxPlies < 0 {
		errs = append(errs, fmt.Errorf("max_plies must not be negative, got %d", c.MaxPlies))
	}
	return errors.Join(errs...)
}
