package terminal

import "testing"

// clearTermEnv blanks every variable Detect and SelectProtocol consult.
func clearTermEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TERM_PROGRAM", "TERM", "KITTY_WINDOW_ID", "ITERM_SESSION_ID",
		"LC_TERMINAL", "WEZTERM_EXECUTABLE", "VTE_VERSION", "INSIDE_EMACS",
		"TMUX", "SSH_TTY", "SSH_CONNECTION", "SSH_CLIENT",
	} {
		t.Setenv(k, "")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Terminal
	}{
		{"generic", nil, TermGeneric},
		{"ghostty program", map[string]string{"TERM_PROGRAM": "ghostty"}, TermGhostty},
		{"kitty term", map[string]string{"TERM": "xterm-kitty"}, TermKitty},
		{"kitty window", map[string]string{"KITTY_WINDOW_ID": "1"}, TermKitty},
		{"iterm", map[string]string{"TERM_PROGRAM": "iTerm.app"}, TermITerm2},
		{"iterm via ssh", map[string]string{"LC_TERMINAL": "iTerm2"}, TermITerm2},
		{"wezterm", map[string]string{"WEZTERM_EXECUTABLE": "/usr/bin/wezterm"}, TermWezTerm},
		{"vte", map[string]string{"VTE_VERSION": "7600"}, TermVTE},
		{"emacs", map[string]string{"INSIDE_EMACS": "vterm"}, TermEmacs},
		{"tmux", map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"}, TermTmux},
		{"program wins over tmux", map[string]string{"TERM_PROGRAM": "WezTerm", "TMUX": "x"}, TermWezTerm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTermEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := Detect(); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectProtocol(t *testing.T) {
	clearTermEnv(t)
	if got := SelectProtocol(TermKitty); got != ProtocolKitty {
		t.Errorf("kitty -> %v", got)
	}
	if got := SelectProtocol(TermITerm2); got != ProtocolITerm2 {
		t.Errorf("iterm2 -> %v", got)
	}
	if got := SelectProtocol(TermVTE); got != ProtocolHalfblocks {
		t.Errorf("vte -> %v", got)
	}

	t.Setenv("SSH_TTY", "/dev/pts/3")
	if got := SelectProtocol(TermKitty); got != ProtocolHalfblocks {
		t.Errorf("kitty over ssh -> %v, want halfblocks", got)
	}
}

func TestSelectProtocolWithOverride(t *testing.T) {
	clearTermEnv(t)
	tests := []struct {
		override string
		want     GraphicsProtocol
	}{
		{"sixel", ProtocolSixel},
		{"NONE", ProtocolNone},
		{"unicode", ProtocolHalfblocks},
		{"auto", ProtocolKitty},
		{"", ProtocolKitty},
		{"bogus", ProtocolKitty},
	}
	for _, tt := range tests {
		if got := SelectProtocolWithOverride(TermGhostty, tt.override); got != tt.want {
			t.Errorf("override %q -> %v, want %v", tt.override, got, tt.want)
		}
	}
}

func TestStringers(t *testing.T) {
	if TermWezTerm.String() != "wezterm" || Terminal(99).String() != "unknown" {
		t.Error("Terminal.String mismatch")
	}
	if ProtocolHalfblocks.String() != "halfblocks" || GraphicsProtocol(-1).String() != "unknown" {
		t.Error("GraphicsProtocol.String mismatch")
	}
}

func TestSizeFromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "120")
	t.Setenv("LINES", "oops")
	s := getSizeFromEnv()
	if s.Cols != 120 || s.Rows != 24 {
		t.Errorf("getSizeFromEnv = %+v, want 120x24", s)
	}
}
