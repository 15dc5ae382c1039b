// Package app defines the Bubbletea messages and commands that connect the
// widget lifecycle to an interactive program: periodic refresh ticks,
// refreshed views, and dispatched activations.
package app

import (
	"time"

	"github.com/fetchpet/fetchpet-widget/pkg/action"
	"github.com/fetchpet/fetchpet-widget/pkg/widget"
)

// TickEvent marks the start of a widget update cycle.
type TickEvent struct {
	Time time.Time
}

// RefreshEvent carries freshly rendered views keyed by instance id.
type RefreshEvent struct {
	Views     map[int]widget.View
	Timestamp time.Time
}

// ActivationEvent reports that a tap was handed to the dispatcher. The
// launch outcome is not known at this point.
type ActivationEvent struct {
	Instance int
	Trigger  action.Trigger
	// Target is the deep link the binding resolved to, empty if none.
	Target     string
	Dispatched bool
}
