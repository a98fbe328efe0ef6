package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gridcrawl/server/models"
)

// Balance holds the starting stats handed out by the loader.
type Balance struct {
	PlayerHP      int `yaml:"player_hp"`
	PlayerDamage  int `yaml:"player_damage"`
	PlayerGold    int `yaml:"player_gold"`
	HostileHP     int `yaml:"hostile_hp"`
	HostileDamage int `yaml:"hostile_damage"`
	GoldPile      int `yaml:"gold_pile"`
}

// Config is the root of the YAML config file.
type Config struct {
	Balance Balance         `yaml:"balance"`
	Layouts []models.Layout `yaml:"layouts"`
}

// DefaultBalance returns the stats used when no config file overrides them.
func DefaultBalance() Balance {
	return Balance{
		PlayerHP:      42,
		PlayerDamage:  7,
		PlayerGold:    0,
		HostileHP:     42,
		HostileDamage: 1,
		GoldPile:      42,
	}
}

func Default() *Config {
	return &Config{Balance: DefaultBalance()}
}

// Load reads a YAML config file. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	for i, l := range cfg.Layouts {
		if l.Name == "" {
			return nil, fmt.Errorf("layout #%d in %s has no name", i, path)
		}
		if l.Width <= 0 || l.Height <= 0 {
			return nil, fmt.Errorf("layout %q in %s has bad dimensions %dx%d", l.Name, path, l.Width, l.Height)
		}
	}

	return cfg, nil
}

// Getenv returns the environment variable or def when it is unset.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
