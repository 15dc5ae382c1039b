// Package action maps widget tap targets to the deep links that reopen the
// FetchPet host application, and hands those links off to the platform.
package action

import (
	"fmt"
	"net/url"
)

// Trigger identifies a tappable control on the widget surface.
type Trigger string

const (
	TriggerDraw     Trigger = "draw"
	TriggerComplete Trigger = "complete"
)

// Scheme is the URI scheme the host application routes.
const Scheme = "fetchpet"

// Binding ties a trigger to the deep link it opens.
type Binding struct {
	Trigger Trigger
	// Action is the broadcast action name the platform delivers on tap.
	Action string
	// RequestCode keeps pending activations for different triggers distinct.
	RequestCode int
	Target      *url.URL
}

// Bindings is a trigger lookup table.
type Bindings struct {
	byTrigger map[Trigger]Binding
	order     []Trigger
}

// NewBindings builds a table from bs. Duplicate triggers and bindings
// without a target are rejected.
func NewBindings(bs ...Binding) (*Bindings, error) {
	t := &Bindings{byTrigger: make(map[Trigger]Binding, len(bs))}
	for _, b := range bs {
		if b.Target == nil {
			return nil, fmt.Errorf("action: binding %q has no target", b.Trigger)
		}
		if _, dup := t.byTrigger[b.Trigger]; dup {
			return nil, fmt.Errorf("action: duplicate binding for %q", b.Trigger)
		}
		t.byTrigger[b.Trigger] = b
		t.order = append(t.order, b.Trigger)
	}
	return t, nil
}

// DefaultBindings returns the two fixed widget bindings:
// draw -> fetchpet://draw and complete -> fetchpet://complete.
func DefaultBindings() *Bindings {
	t, err := NewBindings(
		Binding{
			Trigger:     TriggerDraw,
			Action:      "DRAW_ACTION",
			RequestCode: 0,
			Target:      DeepLink("draw"),
		},
		Binding{
			Trigger:     TriggerComplete,
			Action:      "COMPLETE_ACTION",
			RequestCode: 1,
			Target:      DeepLink("complete"),
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// DeepLink returns the fetchpet:// URI for host.
func DeepLink(host string) *url.URL {
	return &url.URL{Scheme: Scheme, Host: host}
}

// Resolve returns the binding for trigger.
func (t *Bindings) Resolve(trigger Trigger) (Binding, bool) {
	b, ok := t.byTrigger[trigger]
	return b, ok
}

// ResolveAction returns the binding whose broadcast action name is action.
func (t *Bindings) ResolveAction(action string) (Binding, bool) {
	for _, tr := range t.order {
		if b := t.byTrigger[tr]; b.Action == action {
			return b, true
		}
	}
	return Binding{}, false
}

// All returns copies of the bindings in declaration order. Targets are
// cloned, so callers may keep or modify the result.
func (t *Bindings) All() []Binding {
	out := make([]Binding, 0, len(t.order))
	for _, tr := range t.order {
		b := t.byTrigger[tr]
		u := *b.Target
		b.Target = &u
		out = append(out, b)
	}
	return out
}
