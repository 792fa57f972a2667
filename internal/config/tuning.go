package config

import (
	"fmt"
	"os"

	"github.com/tomz197/balloons/internal/game"
	"gopkg.in/yaml.v3"
)

// LoadGameConfig reads a YAML tuning file on top of game.DefaultConfig.
// Keys missing from the file keep their default values. An empty path returns
// the defaults.
func LoadGameConfig(path string) (game.Config, error) {
	cfg := game.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read game config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("game config %s: %w", path, err)
	}
	return cfg, nil
}
