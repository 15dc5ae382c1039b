// Package theme holds the named color palettes used to draw the widget card.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is the palette for one widget card. All colors are "#RRGGBB".
type Theme struct {
	Name string

	Background string
	Foreground string
	Dim        string
	Border     string
	Accent     string // border of the selected instance

	Level  string
	Streak string

	ButtonFG    string
	DrawBG      string
	CompleteBG  string
	HelpKey     string
	HelpDesc    string
	PetFallback string // color of the text sprite when no artwork renders
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	for _, t := range []Theme{defaultTheme(), nightTheme(), monoTheme()} {
		register(t)
	}
}

// Get returns a named theme, falling back to "default" if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Has reports whether a theme is registered under name.
func Has(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[strings.ToLower(name)]
	return ok
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a theme after validating it.
func Register(t Theme) error {
	if err := validate(t); err != nil {
		return err
	}
	register(t)
	return nil
}

func register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

func defaultTheme() Theme {
	return Theme{
		Name:        "default",
		Background:  "#1e1b2e",
		Foreground:  "#f4f1ff",
		Dim:         "#8b85a8",
		Border:      "#4b4469",
		Accent:      "#f59e0b",
		Level:       "#a78bfa",
		Streak:      "#fb923c",
		ButtonFG:    "#ffffff",
		DrawBG:      "#7c3aed",
		CompleteBG:  "#10b981",
		HelpKey:     "#a78bfa",
		HelpDesc:    "#8b85a8",
		PetFallback: "#fcd34d",
	}
}

func nightTheme() Theme {
	return Theme{
		Name:        "night",
		Background:  "#1a1b26",
		Foreground:  "#c0caf5",
		Dim:         "#565f89",
		Border:      "#3b4261",
		Accent:      "#7aa2f7",
		Level:       "#bb9af7",
		Streak:      "#ff9e64",
		ButtonFG:    "#1a1b26",
		DrawBG:      "#7aa2f7",
		CompleteBG:  "#9ece6a",
		HelpKey:     "#7aa2f7",
		HelpDesc:    "#565f89",
		PetFallback: "#e0af68",
	}
}

func monoTheme() Theme {
	return Theme{
		Name:        "mono",
		Background:  "#000000",
		Foreground:  "#e5e5e5",
		Dim:         "#7f7f7f",
		Border:      "#5f5f5f",
		Accent:      "#ffffff",
		Level:       "#ffffff",
		Streak:      "#e5e5e5",
		ButtonFG:    "#000000",
		DrawBG:      "#e5e5e5",
		CompleteBG:  "#bfbfbf",
		HelpKey:     "#ffffff",
		HelpDesc:    "#7f7f7f",
		PetFallback: "#e5e5e5",
	}
}
