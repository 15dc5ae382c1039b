package widget

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fetchpet/fetchpet-widget/pkg/action"
	"github.com/fetchpet/fetchpet-widget/pkg/prefs"
)

// Host receives rendered views for managed widget instances.
type Host interface {
	UpdateInstance(id int, v View)
}

// HostFunc adapts a function to Host.
type HostFunc func(id int, v View)

// UpdateInstance calls f(id, v).
func (f HostFunc) UpdateInstance(id int, v View) {
	f(id, v)
}

// Activator starts the launch bound to a trigger without waiting for it.
type Activator interface {
	Dispatch(ctx context.Context, trigger action.Trigger) bool
}

// Provider drives the widget through the platform callbacks: refresh a set
// of instances, receive taps, and observe the first and last placement.
type Provider struct {
	prefs     prefs.Provider
	activator Activator
	logger    *slog.Logger

	// mu serializes reload-and-read so one snapshot never mixes two
	// versions of a document-backed store.
	mu sync.Mutex
}

// NewProvider creates a Provider. A nil store renders every instance with
// the default snapshot; a nil logger uses slog.Default.
func NewProvider(store prefs.Provider, activator Activator, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{prefs: store, activator: activator, logger: logger}
}

// Snapshot reads the current snapshot, reloading document-backed stores
// first. A failed reload is logged and reads as an empty store. It is safe
// to call from several goroutines.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.prefs.(prefs.Reloader); ok {
		if err := r.Load(); err != nil {
			p.logger.Warn("reading widget prefs failed, using defaults", "error", err)
		}
	}
	return Load(p.prefs)
}

// OnUpdate renders each instance in ids from a fresh read of the store and
// hands the result to host.
func (p *Provider) OnUpdate(host Host, ids []int) {
	for _, id := range ids {
		v := Render(p.Snapshot())
		p.logger.Debug("widget updated", "instance", id, "level", v.LevelLabel, "draw", v.DrawButton.Visible, "complete", v.CompleteButton.Visible)
		host.UpdateInstance(id, v)
	}
}

// OnReceive routes a tap to the activator. Unknown triggers are ignored.
func (p *Provider) OnReceive(ctx context.Context, trigger action.Trigger) bool {
	if p.activator == nil {
		p.logger.Debug("no activator configured", "trigger", trigger)
		return false
	}
	return p.activator.Dispatch(ctx, trigger)
}

// OnEnabled is called when the first instance is placed.
func (p *Provider) OnEnabled() {
	p.logger.Debug("first widget instance placed")
}

// OnDisabled is called when the last instance is removed.
func (p *Provider) OnDisabled() {
	p.logger.Debug("last widget instance removed")
}
