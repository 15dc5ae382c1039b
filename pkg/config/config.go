// Package config provides TOML-based configuration for fetchpet-widget.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Prefs   PrefsConfig   `toml:"prefs"`
	Actions ActionsConfig `toml:"actions"`
	Display DisplayConfig `toml:"display"`
}

// GeneralConfig holds logging and refresh settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	// RefreshInterval is the widget update cycle in interactive mode.
	RefreshInterval Duration `toml:"refresh_interval"`

	// Instances lists the widget instance ids to manage.
	Instances []int `toml:"instances"`
}

// PrefsConfig locates the store the host application writes.
type PrefsConfig struct {
	// Backend is "store" (one file per key) or "file" (a flat document).
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Name    string `toml:"name"`
	File    string `toml:"file"`
}

// ActionsConfig controls how deep links reach the host application.
type ActionsConfig struct {
	// Opener is the command that opens a URI. Empty selects the platform
	// default.
	Opener     string   `toml:"opener"`
	OpenerArgs []string `toml:"opener_args"`
	Timeout    Duration `toml:"timeout"`
}

// DisplayConfig controls terminal rendering.
type DisplayConfig struct {
	Theme         string `toml:"theme"`
	ThemeFile     string `toml:"theme_file"`
	PetAssetsDir  string `toml:"pet_assets_dir"`
	ImageProtocol string `toml:"image_protocol"`
	CardWidth     int    `toml:"card_width"`
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !validLogLevels[strings.ToLower(c.General.LogLevel)] {
		return fmt.Errorf("general.log_level: unknown level %q", c.General.LogLevel)
	}
	if c.General.RefreshInterval.Duration < time.Second {
		return fmt.Errorf("general.refresh_interval: must be at least 1s, got %s", c.General.RefreshInterval)
	}
	if len(c.General.Instances) == 0 {
		return fmt.Errorf("general.instances: at least one instance id is required")
	}
	seen := make(map[int]bool, len(c.General.Instances))
	for _, id := range c.General.Instances {
		if seen[id] {
			return fmt.Errorf("general.instances: duplicate id %d", id)
		}
		seen[id] = true
	}

	switch strings.ToLower(c.Prefs.Backend) {
	case "store":
		if c.Prefs.Dir == "" {
			return fmt.Errorf("prefs.dir: required for the store backend")
		}
	case "file":
		if c.Prefs.File == "" {
			return fmt.Errorf("prefs.file: required for the file backend")
		}
	default:
		return fmt.Errorf("prefs.backend: unknown backend %q", c.Prefs.Backend)
	}

	if c.Display.CardWidth != 0 && c.Display.CardWidth < 20 {
		return fmt.Errorf("display.card_width: must be at least 20, got %d", c.Display.CardWidth)
	}
	return nil
}

// PrefsPath returns the path handed to the selected prefs backend.
func (c *Config) PrefsPath() string {
	if strings.EqualFold(c.Prefs.Backend, "file") {
		return c.Prefs.File
	}
	return c.Prefs.Dir
}

// Duration is a time.Duration written in TOML as a Go duration string,
// e.g. refresh_interval = "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value is
// zero; negative values are rejected.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	switch {
	case err != nil:
		return fmt.Errorf("config: duration %q: %w", s, err)
	case v < 0:
		return fmt.Errorf("config: duration %q is negative", s)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
