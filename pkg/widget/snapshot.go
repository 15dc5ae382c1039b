// Package widget renders the FetchPet status surface: a pure mapping from
// the snapshot the host application shares to the view shown on a widget
// instance, plus the lifecycle that drives it.
package widget

import "github.com/fetchpet/fetchpet-widget/pkg/prefs"

// Store keys written by the host application.
const (
	KeyState   = "widget_state"
	KeyMessage = "widget_message"
	KeyLevel   = "widget_level"
	KeyStreak  = "widget_streak"
)

// State is the host-reported widget state. Values outside the known set are
// kept verbatim and fall to the default arm of every mapping.
type State string

const (
	StateWaiting   State = "waiting"
	StateResult    State = "result"
	StateCompleted State = "completed"
)

// Defaults substituted for absent or malformed entries.
const (
	DefaultState   = StateWaiting
	DefaultMessage = "주인님, 오늘 뭐 할까?"
	DefaultLevel   = 1
	DefaultStreak  = 0
)

// Snapshot is the state read from the shared store for one render.
type Snapshot struct {
	State   State  `json:"state"`
	Message string `json:"message"`
	Level   int    `json:"level"`
	Streak  int    `json:"streak"`
}

// DefaultSnapshot is what an empty or unavailable store reads as.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		State:   DefaultState,
		Message: DefaultMessage,
		Level:   DefaultLevel,
		Streak:  DefaultStreak,
	}
}

// Load reads a snapshot from p, substituting defaults field by field. A nil
// provider yields DefaultSnapshot. Negative level or streak values are
// treated as malformed.
func Load(p prefs.Provider) Snapshot {
	s := DefaultSnapshot()
	if p == nil {
		return s
	}

	if v, ok := p.String(KeyState); ok {
		s.State = State(v)
	}
	if v, ok := p.String(KeyMessage); ok {
		s.Message = v
	}
	if v, ok := p.Int(KeyLevel); ok && v >= 0 {
		s.Level = v
	}
	if v, ok := p.Int(KeyStreak); ok && v >= 0 {
		s.Streak = v
	}
	return s
}
