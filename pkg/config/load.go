package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "fetchpet-widget"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/fetchpet-widget/config.toml
//  2. ~/.config/fetchpet-widget/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader. Keys absent from
// the document keep their defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	expandPaths(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		General: GeneralConfig{
			LogLevel:        "info",
			LogFile:         filepath.Join(xdgStateHome(home), AppName, "widget.log"),
			RefreshInterval: Duration{30 * time.Second},
			Instances:       []int{1},
		},
		Prefs: PrefsConfig{
			Backend: "store",
			Dir:     filepath.Join(xdgDataHome(home), "fetchpet"),
			Name:    "HomeWidgetPrefs",
		},
		Actions: ActionsConfig{
			Timeout: Duration{10 * time.Second},
		},
		Display: DisplayConfig{
			Theme:         "default",
			ImageProtocol: "auto",
			CardWidth:     34,
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FETCHPET_PREFS_DIR"); v != "" {
		cfg.Prefs.Backend = "store"
		cfg.Prefs.Dir = v
	}
	if v := os.Getenv("FETCHPET_PREFS_FILE"); v != "" {
		cfg.Prefs.Backend = "file"
		cfg.Prefs.File = v
	}
	if v := os.Getenv("FETCHPET_OPENER"); v != "" {
		cfg.Actions.Opener = v
	}
	if v := os.Getenv("FETCHPET_THEME"); v != "" {
		cfg.Display.Theme = v
	}
	if v := os.Getenv("FETCHPET_PROTOCOL"); v != "" {
		cfg.Display.ImageProtocol = v
	}
}

// expandPaths resolves a leading "~/" in path settings.
func expandPaths(cfg *Config) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	for _, p := range []*string{
		&cfg.General.LogFile,
		&cfg.Prefs.Dir,
		&cfg.Prefs.File,
		&cfg.Display.PetAssetsDir,
		&cfg.Display.ThemeFile,
	} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, AppName, "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, AppName, "config.toml"))
	}

	return paths
}

func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

func xdgDataHome(home string) string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "share")
}

func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
