package widget

import (
	"fmt"

	"github.com/fetchpet/fetchpet-widget/pkg/action"
)

// Button labels.
const (
	LabelDraw   = "뽑기"
	LabelRedraw = "다시 뽑기"
)

// PetImage names a pet artwork variant.
type PetImage string

// PetDefault is the only variant with artwork.
const PetDefault PetImage = "default"

// Button is the presentation of one tappable control.
type Button struct {
	Label   string `json:"label,omitempty"`
	Visible bool   `json:"visible"`
}

// View is the presentation derived from one Snapshot. It is recomputed on
// every render and never stored.
type View struct {
	LevelLabel     string   `json:"level_label"`
	StreakLabel    string   `json:"streak_label"`
	MessageLabel   string   `json:"message_label"`
	PetImage       PetImage `json:"pet_image"`
	DrawButton     Button   `json:"draw_button"`
	CompleteButton Button   `json:"complete_button"`

	// Bindings are the tap targets. They do not depend on the snapshot.
	Bindings []action.Binding `json:"-"`
}

// bindings is the fixed tap table every view carries.
var bindings = action.DefaultBindings()

// Render maps s to its View. It is total and deterministic.
func Render(s Snapshot) View {
	v := View{
		LevelLabel:   fmt.Sprintf("Lv.%d", s.Level),
		StreakLabel:  fmt.Sprintf("🔥 %d일", s.Streak),
		MessageLabel: s.Message,
		PetImage:     petImageFor(s.State),
		Bindings:     bindings.All(),
	}

	switch s.State {
	case StateWaiting:
		v.DrawButton = Button{Label: LabelDraw, Visible: true}
	case StateResult:
		v.DrawButton = Button{Label: LabelRedraw, Visible: true}
		v.CompleteButton = Button{Visible: true}
	case StateCompleted:
		// Terminal state: nothing left to tap.
		v.DrawButton = Button{Label: LabelDraw}
	default:
		v.DrawButton = Button{Label: LabelDraw, Visible: true}
	}
	return v
}

// petImageFor picks the pet artwork for a state. Happy and sulky artwork
// does not exist yet, so every arm resolves to PetDefault.
func petImageFor(s State) PetImage {
	switch s {
	case StateCompleted:
		return PetDefault
	case "sulky":
		return PetDefault
	default:
		return PetDefault
	}
}

// ButtonVisible reports whether the control bound to trigger is shown.
func (v View) ButtonVisible(trigger action.Trigger) bool {
	switch trigger {
	case action.TriggerDraw:
		return v.DrawButton.Visible
	case action.TriggerComplete:
		return v.CompleteButton.Visible
	default:
		return false
	}
}

// Binding returns the tap target for trigger.
func (v View) Binding(trigger action.Trigger) (action.Binding, bool) {
	for _, b := range v.Bindings {
		if b.Trigger == trigger {
			return b, true
		}
	}
	return action.Binding{}, false
}
