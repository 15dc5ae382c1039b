package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/fetchpet/fetchpet-widget/pkg/action"
	"github.com/fetchpet/fetchpet-widget/pkg/components"
	"github.com/fetchpet/fetchpet-widget/pkg/petimage"
	"github.com/fetchpet/fetchpet-widget/pkg/theme"
	"github.com/fetchpet/fetchpet-widget/pkg/widget"
)

// LabelComplete is the caption of the complete button.
const LabelComplete = "완료"

// Card geometry in rows.
const (
	petRows     = 3
	messageRows = 2
)

// DefaultCardWidth is the outer card width when none is configured.
const DefaultCardWidth = 34

// CardOptions controls how one widget instance is drawn.
type CardOptions struct {
	Width    int
	Theme    theme.Theme
	Pets     *petimage.Renderer
	Selected bool

	// Zones, when set, marks each visible button so mouse clicks can be
	// resolved back to Instance.
	Zones    *zone.Manager
	Instance int
}

// ZoneID names the click zone of a button on an instance.
func ZoneID(instance int, trigger action.Trigger) string {
	return fmt.Sprintf("fetchpet-%d-%s", instance, trigger)
}

// RenderCard draws v as a bordered card. The card height does not depend
// on the view, so instances line up when joined side by side.
func RenderCard(v widget.View, o CardOptions) string {
	if o.Width < 20 {
		o.Width = DefaultCardWidth
	}
	inner := o.Width - 4
	th := o.Theme

	fg := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Foreground))
	level := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Level)).Render(v.LevelLabel)
	streak := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Streak)).Render(v.StreakLabel)

	gap := inner - components.VisibleLen(level) - components.VisibleLen(streak)
	if gap < 1 {
		gap = 1
	}
	header := components.Truncate(level+strings.Repeat(" ", gap)+streak, inner)

	var pet string
	if o.Pets != nil {
		pet = o.Pets.Cells(v.PetImage, inner, petRows)
	} else {
		pet = petimage.Sprite(v.PetImage, inner, petRows)
	}
	pet = lipgloss.NewStyle().Foreground(lipgloss.Color(th.PetFallback)).Render(pet)

	msgLines := components.FitLines(v.MessageLabel, inner, messageRows)
	for len(msgLines) < messageRows {
		msgLines = append(msgLines, "")
	}
	for i, l := range msgLines {
		msgLines[i] = fg.Render(components.PadCenter(l, inner))
	}

	rows := []string{header, pet}
	rows = append(rows, msgLines...)
	rows = append(rows, "", renderButtons(v, o, inner))

	border := th.Border
	if o.Selected {
		border = th.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(o.Width - 2).
		Render(strings.Join(rows, "\n"))
}

// renderButtons draws the visible buttons centered on one row. In the
// completed state the row is blank.
func renderButtons(v widget.View, o CardOptions, width int) string {
	th := o.Theme
	btn := func(label, bg string, trigger action.Trigger) string {
		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(th.ButtonFG)).
			Background(lipgloss.Color(bg)).
			Padding(0, 1).
			Render(label)
		if o.Zones != nil {
			s = o.Zones.Mark(ZoneID(o.Instance, trigger), s)
		}
		return s
	}

	var parts []string
	if v.DrawButton.Visible {
		parts = append(parts, btn(v.DrawButton.Label, th.DrawBG, action.TriggerDraw))
	}
	if v.CompleteButton.Visible {
		parts = append(parts, btn(LabelComplete, th.CompleteBG, action.TriggerComplete))
	}
	return components.PadCenter(strings.Join(parts, "  "), width)
}
