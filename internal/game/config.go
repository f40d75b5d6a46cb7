package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable simulation constants. It is passed into
// the managers explicitly so the turn pipeline stays testable.
type Config struct {
	MaxFocus int            `yaml:"max_focus" json:"max_focus"`
	Upkeep   UpkeepConfig   `yaml:"upkeep" json:"upkeep"`
	HouseTax HouseTaxConfig `yaml:"house_tax" json:"house_tax"`
}

// UpkeepConfig is the base end-of-turn cost before population scaling.
type UpkeepConfig struct {
	Food int `yaml:"food" json:"food"`
	Gold int `yaml:"gold" json:"gold"`
}

// HouseTaxConfig grants flat gold per house each turn once a
// technology is unlocked.
type HouseTaxConfig struct {
	TechnologyID string `yaml:"technology_id" json:"technology_id"`
	BuildingID   string `yaml:"building_id" json:"building_id"`
	Gold         int    `yaml:"gold" json:"gold"`
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MaxFocus: 10,
		Upkeep:   UpkeepConfig{Food: 10, Gold: 5},
		HouseTax: HouseTaxConfig{
			TechnologyID: "taxation",
			BuildingID:   "house",
			Gold:         2,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxFocus < 1 {
		cfg.MaxFocus = 1
	}
	return cfg, nil
}
