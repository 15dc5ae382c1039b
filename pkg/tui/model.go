// Package tui hosts widget instances in an interactive terminal program.
// Each instance is drawn as a card; its buttons can be activated with the
// keyboard or by clicking them.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/fetchpet/fetchpet-widget/pkg/action"
	"github.com/fetchpet/fetchpet-widget/pkg/app"
	"github.com/fetchpet/fetchpet-widget/pkg/petimage"
	"github.com/fetchpet/fetchpet-widget/pkg/theme"
	"github.com/fetchpet/fetchpet-widget/pkg/widget"
)

// Options configures a Model.
type Options struct {
	// Provider drives the instances. Nil renders defaults and binds no
	// actions.
	Provider  *widget.Provider
	Instances []int
	// Refresh is the update cycle period. Default: 30 seconds.
	Refresh   time.Duration
	Theme     theme.Theme
	Pets      *petimage.Renderer
	CardWidth int
	// Context is passed to activations. Default: context.Background().
	Context context.Context
}

// Model is the Bubbletea model for the widget host.
type Model struct {
	opts  Options
	ids   []int
	views map[int]widget.View

	selected int
	zones    *zone.Manager
	keys     keyMap
	help     help.Model

	width       int
	status      string
	lastRefresh time.Time
}

// NewModel creates a Model and renders every instance once so the first
// frame already reflects the store.
func NewModel(opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = 30 * time.Second
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.CardWidth <= 0 {
		opts.CardWidth = DefaultCardWidth
	}
	if opts.Provider == nil {
		opts.Provider = widget.NewProvider(nil, nil, nil)
	}

	ids := append([]int(nil), opts.Instances...)
	sort.Ints(ids)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Theme.HelpKey))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Theme.HelpDesc))
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc

	m := Model{
		opts:  opts,
		ids:   ids,
		views: make(map[int]widget.View, len(ids)),
		zones: zone.New(),
		keys:  defaultKeyMap(),
		help:  h,
	}
	m.opts.Provider.OnEnabled()
	m.opts.Provider.OnUpdate(widget.HostFunc(func(id int, v widget.View) {
		m.views[id] = v
	}), ids)
	m.lastRefresh = time.Now()
	return m
}

// Init starts the update cycle.
func (m Model) Init() tea.Cmd {
	return app.TickCmd(m.opts.Refresh)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case app.TickEvent:
		return m, tea.Batch(
			app.RefreshCmd(m.opts.Provider, m.ids),
			app.TickCmd(m.opts.Refresh),
		)

	case app.RefreshEvent:
		for id, v := range msg.Views {
			m.views[id] = v
		}
		m.lastRefresh = msg.Timestamp
		return m, nil

	case app.ActivationEvent:
		if msg.Dispatched {
			m.status = fmt.Sprintf("widget %d: sent %s", msg.Instance, msg.Target)
		} else {
			m.status = fmt.Sprintf("widget %d: %s is not bound", msg.Instance, msg.Trigger)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.opts.Provider.OnDisabled()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Next):
		if len(m.ids) > 0 {
			m.selected = (m.selected + 1) % len(m.ids)
		}
	case key.Matches(msg, m.keys.Prev):
		if len(m.ids) > 0 {
			m.selected = (m.selected - 1 + len(m.ids)) % len(m.ids)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, app.RefreshCmd(m.opts.Provider, m.ids)
	case key.Matches(msg, m.keys.Draw):
		return m.activate(m.SelectedInstance(), action.TriggerDraw)
	case key.Matches(msg, m.keys.Complete):
		return m.activate(m.SelectedInstance(), action.TriggerComplete)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i, id := range m.ids {
		for _, tr := range []action.Trigger{action.TriggerDraw, action.TriggerComplete} {
			if z := m.zones.Get(ZoneID(id, tr)); z != nil && z.InBounds(msg) {
				m.selected = i
				return m.activate(id, tr)
			}
		}
	}
	return m, nil
}

// activate dispatches trigger for instance if its button is currently
// shown. Hidden buttons cannot be tapped.
func (m Model) activate(instance int, trigger action.Trigger) (tea.Model, tea.Cmd) {
	v, ok := m.views[instance]
	if !ok || !v.ButtonVisible(trigger) {
		m.status = fmt.Sprintf("widget %d: %s is not available", instance, trigger)
		return m, nil
	}
	b, ok := v.Binding(trigger)
	if !ok {
		m.status = fmt.Sprintf("widget %d: %s is not bound", instance, trigger)
		return m, nil
	}
	return m, app.ActivateCmd(m.opts.Context, m.opts.Provider, instance, b)
}

// SelectedInstance returns the id of the selected widget instance, or 0
// when there are none.
func (m Model) SelectedInstance() int {
	if len(m.ids) == 0 {
		return 0
	}
	return m.ids[m.selected]
}

// Status returns the last status line message.
func (m Model) Status() string {
	return m.status
}

// ViewOf returns the current view of an instance.
func (m Model) ViewOf(instance int) (widget.View, bool) {
	v, ok := m.views[instance]
	return v, ok
}

// View renders every instance side by side, wrapping to new rows when the
// terminal is too narrow, followed by the status and help lines.
func (m Model) View() string {
	perRow := len(m.ids)
	if m.width > 0 {
		perRow = m.width / m.opts.CardWidth
	}
	if perRow < 1 {
		perRow = 1
	}

	var rows, cards []string
	for i, id := range m.ids {
		cards = append(cards, RenderCard(m.views[id], CardOptions{
			Width:    m.opts.CardWidth,
			Theme:    m.opts.Theme,
			Pets:     m.opts.Pets,
			Selected: i == m.selected,
			Zones:    m.zones,
			Instance: id,
		}))
		if len(cards) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
			cards = nil
		}
	}
	if len(cards) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.opts.Theme.Dim))
	status := m.status
	if status == "" {
		status = "updated " + m.lastRefresh.Format("15:04:05")
	}

	var b strings.Builder
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(dim.Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return m.zones.Scan(b.String())
}
