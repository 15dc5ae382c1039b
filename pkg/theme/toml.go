package theme

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// tomlTheme is the on-disk layout of a custom theme.
type tomlTheme struct {
	Name string `toml:"name"`
	Base struct {
		Background string `toml:"background"`
		Foreground string `toml:"foreground"`
		Dim        string `toml:"dim"`
		Border     string `toml:"border"`
		Accent     string `toml:"accent"`
	} `toml:"base"`
	Stats struct {
		Level  string `toml:"level"`
		Streak string `toml:"streak"`
	} `toml:"stats"`
	Buttons struct {
		Foreground string `toml:"foreground"`
		Draw       string `toml:"draw"`
		Complete   string `toml:"complete"`
	} `toml:"buttons"`
	Help struct {
		Key  string `toml:"key"`
		Desc string `toml:"desc"`
	} `toml:"help"`
	Pet struct {
		Fallback string `toml:"fallback"`
	} `toml:"pet"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a theme definition.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt tomlTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:        tt.Name,
		Background:  tt.Base.Background,
		Foreground:  tt.Base.Foreground,
		Dim:         tt.Base.Dim,
		Border:      tt.Base.Border,
		Accent:      tt.Base.Accent,
		Level:       tt.Stats.Level,
		Streak:      tt.Stats.Streak,
		ButtonFG:    tt.Buttons.Foreground,
		DrawBG:      tt.Buttons.Draw,
		CompleteBG:  tt.Buttons.Complete,
		HelpKey:     tt.Help.Key,
		HelpDesc:    tt.Help.Desc,
		PetFallback: tt.Pet.Fallback,
	}
	if err := validate(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile parses the theme at path and registers it.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	register(t)
	return t, nil
}

func validate(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	colors := []struct{ field, value string }{
		{"base.background", t.Background},
		{"base.foreground", t.Foreground},
		{"base.dim", t.Dim},
		{"base.border", t.Border},
		{"base.accent", t.Accent},
		{"stats.level", t.Level},
		{"stats.streak", t.Streak},
		{"buttons.foreground", t.ButtonFG},
		{"buttons.draw", t.DrawBG},
		{"buttons.complete", t.CompleteBG},
		{"help.key", t.HelpKey},
		{"help.desc", t.HelpDesc},
		{"pet.fallback", t.PetFallback},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", c.value, c.field)
		}
	}
	return nil
}
