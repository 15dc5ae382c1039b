package widget

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/fetchpet/fetchpet-widget/pkg/action"
	"github.com/fetchpet/fetchpet-widget/pkg/prefs"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeActivator records dispatched triggers and resolves through the
// default binding table.
type fakeActivator struct {
	triggers []action.Trigger
}

func (f *fakeActivator) Dispatch(_ context.Context, tr action.Trigger) bool {
	if _, ok := action.DefaultBindings().Resolve(tr); !ok {
		return false
	}
	f.triggers = append(f.triggers, tr)
	return true
}

// --- Load ---

func TestLoadNilProviderIsDefault(t *testing.T) {
	if got := Load(nil); got != DefaultSnapshot() {
		t.Errorf("Load(nil) = %+v", got)
	}
}

func TestLoadEmptyProviderIsDefault(t *testing.T) {
	got := Load(prefs.Empty)
	want := Snapshot{State: "waiting", Message: "주인님, 오늘 뭐 할까?", Level: 1, Streak: 0}
	if got != want {
		t.Errorf("Load(empty) = %+v, want %+v", got, want)
	}
}

func TestLoadReadsAllFields(t *testing.T) {
	p := prefs.Map{
		KeyState:   "result",
		KeyMessage: "산책 가자!",
		KeyLevel:   7,
		KeyStreak:  12,
	}
	want := Snapshot{State: StateResult, Message: "산책 가자!", Level: 7, Streak: 12}
	if got := Load(p); got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMalformedFieldsFallBack(t *testing.T) {
	p := prefs.Map{
		KeyState:   42,
		KeyMessage: []byte("x"),
		KeyLevel:   "7",
		KeyStreak:  -3,
	}
	if got := Load(p); got != DefaultSnapshot() {
		t.Errorf("Load(malformed) = %+v, want defaults", got)
	}
}

func TestLoadKeepsUnknownStateVerbatim(t *testing.T) {
	got := Load(prefs.Map{KeyState: "sulky"})
	if got.State != "sulky" {
		t.Errorf("State = %q, want sulky", got.State)
	}
}

// --- Render ---

func TestRenderStateMapping(t *testing.T) {
	tests := []struct {
		state        State
		drawLabel    string
		drawVisible  bool
		completeShow bool
	}{
		{StateWaiting, "뽑기", true, false},
		{StateResult, "다시 뽑기", true, true},
		{StateCompleted, "뽑기", false, false},
		{"sulky", "뽑기", true, false},
		{"", "뽑기", true, false},
		{"RESULT", "뽑기", true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			s := DefaultSnapshot()
			s.State = tt.state
			v := Render(s)

			if v.DrawButton.Visible != tt.drawVisible {
				t.Errorf("DrawButton.Visible = %v, want %v", v.DrawButton.Visible, tt.drawVisible)
			}
			if tt.drawVisible && v.DrawButton.Label != tt.drawLabel {
				t.Errorf("DrawButton.Label = %q, want %q", v.DrawButton.Label, tt.drawLabel)
			}
			if v.CompleteButton.Visible != tt.completeShow {
				t.Errorf("CompleteButton.Visible = %v, want %v", v.CompleteButton.Visible, tt.completeShow)
			}
		})
	}
}

func TestRenderLabels(t *testing.T) {
	v := Render(Snapshot{State: StateWaiting, Message: "hi", Level: 7, Streak: 12})

	if v.LevelLabel != "Lv.7" {
		t.Errorf("LevelLabel = %q", v.LevelLabel)
	}
	if v.StreakLabel != "🔥 12일" {
		t.Errorf("StreakLabel = %q", v.StreakLabel)
	}
	if v.MessageLabel != "hi" {
		t.Errorf("MessageLabel = %q", v.MessageLabel)
	}
}

func TestRenderMessageIsVerbatim(t *testing.T) {
	msg := "  줄바꿈\n포함  "
	if got := Render(Snapshot{Message: msg}).MessageLabel; got != msg {
		t.Errorf("MessageLabel = %q, want %q", got, msg)
	}
}

func TestRenderPetImageAlwaysDefault(t *testing.T) {
	for _, st := range []State{StateWaiting, StateResult, StateCompleted, "sulky", "unknown"} {
		if got := Render(Snapshot{State: st}).PetImage; got != PetDefault {
			t.Errorf("state %q PetImage = %q, want %q", st, got, PetDefault)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := Snapshot{State: StateResult, Message: "m", Level: 3, Streak: 4}
	a, b := Render(s), Render(s)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Render not deterministic: %+v vs %+v", a, b)
	}

	// Views do not share binding targets.
	a.Bindings[0].Target.Host = "elsewhere"
	if got := Render(s).Bindings[0].Target.String(); got != "fetchpet://draw" {
		t.Errorf("mutating one view changed another: %q", got)
	}
}

func TestRenderBindingsFixedForEveryState(t *testing.T) {
	for _, st := range []State{StateWaiting, StateResult, StateCompleted, "sulky", ""} {
		v := Render(Snapshot{State: st})
		if len(v.Bindings) != 2 {
			t.Fatalf("state %q: %d bindings, want 2", st, len(v.Bindings))
		}
		for tr, uri := range map[action.Trigger]string{
			action.TriggerDraw:     "fetchpet://draw",
			action.TriggerComplete: "fetchpet://complete",
		} {
			b, ok := v.Binding(tr)
			if !ok || b.Target.String() != uri {
				t.Errorf("state %q: Binding(%s) = %v, %v; want %s", st, tr, b.Target, ok, uri)
			}
		}
		if _, ok := v.Binding("feed"); ok {
			t.Errorf("state %q: unknown trigger resolved", st)
		}
	}
}

func TestViewJSONOmitsBindings(t *testing.T) {
	data, err := json.Marshal(Render(DefaultSnapshot()))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Bindings") || strings.Contains(string(data), "fetchpet://") {
		t.Errorf("JSON carries bindings: %s", data)
	}
}

func TestRenderMissingEqualsExplicitDefaults(t *testing.T) {
	explicit := Render(Snapshot{State: "waiting", Message: "주인님, 오늘 뭐 할까?", Level: 1, Streak: 0})
	if got := Render(Load(nil)); !reflect.DeepEqual(got, explicit) {
		t.Errorf("Render(Load(nil)) = %+v, want %+v", got, explicit)
	}
}

func TestViewButtonVisible(t *testing.T) {
	v := Render(Snapshot{State: StateResult})
	if !v.ButtonVisible(action.TriggerDraw) || !v.ButtonVisible(action.TriggerComplete) {
		t.Error("result state should show both buttons")
	}
	if v.ButtonVisible("feed") {
		t.Error("unknown trigger should never be visible")
	}

	v = Render(Snapshot{State: StateCompleted})
	if v.ButtonVisible(action.TriggerDraw) || v.ButtonVisible(action.TriggerComplete) {
		t.Error("completed state should hide both buttons")
	}
}

// --- Provider ---

func TestOnUpdateRendersEachInstance(t *testing.T) {
	store := prefs.Map{KeyState: "result", KeyLevel: 5}
	p := NewProvider(store, nil, quietLogger())

	got := map[int]View{}
	p.OnUpdate(HostFunc(func(id int, v View) { got[id] = v }), []int{3, 9})

	if len(got) != 2 {
		t.Fatalf("updated %d instances, want 2", len(got))
	}
	for _, id := range []int{3, 9} {
		if got[id].LevelLabel != "Lv.5" || !got[id].CompleteButton.Visible {
			t.Errorf("instance %d view = %+v", id, got[id])
		}
	}
}

func TestOnUpdateWithoutStoreUsesDefaults(t *testing.T) {
	p := NewProvider(nil, nil, quietLogger())

	var got View
	p.OnUpdate(HostFunc(func(_ int, v View) { got = v }), []int{1})

	if !reflect.DeepEqual(got, Render(DefaultSnapshot())) {
		t.Errorf("view = %+v", got)
	}
}

func TestOnUpdateReloadsFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte(`{"widget_state":"waiting"}`), 0644); err != nil {
		t.Fatal(err)
	}
	p := NewProvider(prefs.NewFile(path), nil, quietLogger())

	if s := p.Snapshot(); s.State != StateWaiting {
		t.Fatalf("first read state = %q", s.State)
	}

	if err := os.WriteFile(path, []byte(`{"widget_state":"completed"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if s := p.Snapshot(); s.State != StateCompleted {
		t.Errorf("after rewrite state = %q, want completed", s.State)
	}

	if err := os.WriteFile(path, []byte(`{oops`), 0644); err != nil {
		t.Fatal(err)
	}
	if s := p.Snapshot(); s != DefaultSnapshot() {
		t.Errorf("malformed file snapshot = %+v, want defaults", s)
	}
}

func TestOnReceiveRoutesToActivator(t *testing.T) {
	act := &fakeActivator{}
	p := NewProvider(prefs.Empty, act, quietLogger())

	if !p.OnReceive(context.Background(), action.TriggerDraw) {
		t.Error("draw should dispatch")
	}
	if p.OnReceive(context.Background(), "feed") {
		t.Error("unknown trigger should be ignored")
	}
	if !reflect.DeepEqual(act.triggers, []action.Trigger{action.TriggerDraw}) {
		t.Errorf("dispatched %v", act.triggers)
	}
}

func TestOnReceiveWithoutActivator(t *testing.T) {
	p := NewProvider(prefs.Empty, nil, quietLogger())
	if p.OnReceive(context.Background(), action.TriggerComplete) {
		t.Error("OnReceive without activator should report false")
	}
	p.OnEnabled()
	p.OnDisabled()
}

func TestOnUpdateConcurrentRefreshesOnFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	doc := `{"widget_state":"result","widget_message":"산책","widget_level":4,"widget_streak":2}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	p := NewProvider(prefs.NewFile(path), nil, quietLogger())
	want := Render(Snapshot{State: StateResult, Message: "산책", Level: 4, Streak: 2})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				p.OnUpdate(HostFunc(func(_ int, v View) {
					if !reflect.DeepEqual(v, want) {
						t.Errorf("instance %d view = %+v, want %+v", id, v, want)
					}
				}), []int{id})
			}
		}(g)
	}
	wg.Wait()
}
