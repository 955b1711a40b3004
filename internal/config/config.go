// Package config carries the process-wide tracker configuration. The dosing
// rate is always derived from the two persisted interval inputs and handed
// into the projection engine explicitly; nothing in the core reads it from
// ambient state.
package config

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the tracker. Values are resolved in layers:
// built-in defaults, then the optional JSON config file, then environment
// variables, then command-line flags on top.
type Config struct {
	// PillsPerInterval and HoursPerInterval define the ideal intake rate as
	// their ratio, recomputed on every use.
	PillsPerInterval float64 `json:"pillsPerInterval" env:"PILL_DOSER_PILLS_PER_INTERVAL"`
	HoursPerInterval float64 `json:"hoursPerInterval" env:"PILL_DOSER_HOURS_PER_INTERVAL"`

	// DefaultDose is the quick-add preset amount.
	DefaultDose float64 `json:"defaultDose" env:"PILL_DOSER_DEFAULT_DOSE"`

	// SheetURL points at the remote spreadsheet web endpoint. When empty the
	// tracker uses the local store only.
	SheetURL string `json:"sheetUrl" env:"PILL_DOSER_SHEET_URL"`

	// DataDir holds the local database and the last-known-good snapshot.
	DataDir string `json:"dataDir" env:"PILL_DOSER_DATA_DIR"`

	// Timezone is display-only; dosage arithmetic stays on the UTC epoch.
	Timezone string `json:"timezone" env:"PILL_DOSER_TIMEZONE"`

	// ListenAddr is the bind address for the serve command.
	ListenAddr string `json:"listen" env:"PILL_DOSER_LISTEN"`

	// BackProject selects the back-projected ideal-line variant.
	BackProject bool `json:"backProject" env:"PILL_DOSER_BACK_PROJECT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PillsPerInterval: 1,
		HoursPerInterval: 12,
		DefaultDose:      1,
		Timezone:         "Local",
		ListenAddr:       ":8479",
	}
}

// Load resolves configuration from defaults, the JSON file at path (ignored
// when absent), and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := sonic.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// No config file is the common case
		default:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration back to the JSON file at path, creating it
// when missing. Used to persist the interval inputs across sessions.
func (c *Config) Save(path string) error {
	data, err := sonic.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}
