// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Dataset   DatasetConfig   `toml:"dataset"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Export    ExportConfig    `toml:"export"`
}

// DatasetConfig maps dataset-related settings.
type DatasetConfig struct {
	Source *string `toml:"source"`
}

// DashboardConfig maps dashboard settings.
type DashboardConfig struct {
	PageSize   *int  `toml:"page-size"`
	DebounceMs *int  `toml:"debounce-ms"`
	PlotHeight *int  `toml:"plot-height"`
	Watch      *bool `toml:"watch"`
}

// ExportConfig maps export settings.
type ExportConfig struct {
	Path *string `toml:"path"`
}

// Debounce returns the configured search delay, or zero when unset.
func (c DashboardConfig) Debounce() time.Duration {
	if c.DebounceMs == nil {
		return 0
	}
	return time.Duration(*c.DebounceMs) * time.Millisecond
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
