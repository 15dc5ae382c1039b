package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fetchpet/fetchpet-widget/pkg/action"
	"github.com/fetchpet/fetchpet-widget/pkg/widget"
)

// TickCmd returns a Cmd that sends a TickEvent after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// RefreshCmd returns a Cmd that runs one update cycle for ids and delivers
// the views as a RefreshEvent.
func RefreshCmd(p *widget.Provider, ids []int) tea.Cmd {
	ids = append([]int(nil), ids...)
	return func() tea.Msg {
		views := make(map[int]widget.View, len(ids))
		p.OnUpdate(widget.HostFunc(func(id int, v widget.View) {
			views[id] = v
		}), ids)
		return RefreshEvent{Views: views, Timestamp: time.Now()}
	}
}

// ActivateCmd returns a Cmd that hands b's trigger to the provider and
// reports the outcome as an ActivationEvent. The launch itself is not
// awaited.
func ActivateCmd(ctx context.Context, p *widget.Provider, instance int, b action.Binding) tea.Cmd {
	var target string
	if b.Target != nil {
		target = b.Target.String()
	}
	return func() tea.Msg {
		return ActivationEvent{
			Instance:   instance,
			Trigger:    b.Trigger,
			Target:     target,
			Dispatched: p.OnReceive(ctx, b.Trigger),
		}
	}
}
