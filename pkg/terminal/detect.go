// Package terminal identifies the terminal the widget is drawn in, picks an
// inline image protocol for the pet artwork, and queries the window size.
// Detection only inspects environment variables.
package terminal

import (
	"os"
	"strings"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermGeneric Terminal = iota
	TermGhostty
	TermKitty
	TermWezTerm
	TermITerm2
	TermVTE
	TermTmux
	TermEmacs
)

var terminalNames = [...]string{
	TermGeneric: "generic",
	TermGhostty: "ghostty",
	TermKitty:   "kitty",
	TermWezTerm: "wezterm",
	TermITerm2:  "iterm2",
	TermVTE:     "vte",
	TermTmux:    "tmux",
	TermEmacs:   "emacs",
}

// String returns the lowercase terminal name.
func (t Terminal) String() string {
	if t >= 0 && int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// Detect identifies the terminal emulator from environment variables,
// most reliable signal first: TERM_PROGRAM, TERM, emulator-specific
// variables, then multiplexers.
func Detect() Terminal {
	switch strings.ToLower(os.Getenv("TERM_PROGRAM")) {
	case "ghostty":
		return TermGhostty
	case "kitty":
		return TermKitty
	case "wezterm":
		return TermWezTerm
	case "iterm.app":
		return TermITerm2
	case "tmux":
		return TermTmux
	}

	switch os.Getenv("TERM") {
	case "xterm-ghostty":
		return TermGhostty
	case "xterm-kitty":
		return TermKitty
	}

	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "":
		return TermKitty
	case os.Getenv("ITERM_SESSION_ID") != "", os.Getenv("LC_TERMINAL") == "iTerm2":
		return TermITerm2
	case os.Getenv("WEZTERM_EXECUTABLE") != "":
		return TermWezTerm
	case os.Getenv("VTE_VERSION") != "":
		return TermVTE
	case os.Getenv("INSIDE_EMACS") != "":
		return TermEmacs
	case os.Getenv("TMUX") != "":
		return TermTmux
	}
	return TermGeneric
}
