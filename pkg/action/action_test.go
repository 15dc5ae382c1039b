package action

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"testing"
	"time"
)

// recordingLauncher captures every URI it is asked to open.
type recordingLauncher struct {
	mu   sync.Mutex
	uris []string
	err  error
}

func (r *recordingLauncher) Open(_ context.Context, uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uris = append(r.uris, uri)
	return r.err
}

func (r *recordingLauncher) opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.uris...)
}

// blockingLauncher parks every Open until release is closed.
type blockingLauncher struct {
	release chan struct{}
}

func (b *blockingLauncher) Open(ctx context.Context, _ string) error {
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultBindingsTargets(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		trigger Trigger
		action  string
		code    int
		uri     string
	}{
		{TriggerDraw, "DRAW_ACTION", 0, "fetchpet://draw"},
		{TriggerComplete, "COMPLETE_ACTION", 1, "fetchpet://complete"},
	}
	for _, tt := range tests {
		got, ok := b.Resolve(tt.trigger)
		if !ok {
			t.Fatalf("Resolve(%q) missing", tt.trigger)
		}
		if got.Target.String() != tt.uri {
			t.Errorf("%s target = %q, want %q", tt.trigger, got.Target, tt.uri)
		}
		if got.Action != tt.action || got.RequestCode != tt.code {
			t.Errorf("%s = {%q, %d}, want {%q, %d}", tt.trigger, got.Action, got.RequestCode, tt.action, tt.code)
		}

		byAction, ok := b.ResolveAction(tt.action)
		if !ok || byAction.Trigger != tt.trigger {
			t.Errorf("ResolveAction(%q) = %v, %v", tt.action, byAction.Trigger, ok)
		}
	}

	if _, ok := b.Resolve("share"); ok {
		t.Error("unknown trigger should not resolve")
	}
	if len(b.All()) != 2 || b.All()[0].Trigger != TriggerDraw {
		t.Errorf("All() order = %v", b.All())
	}
}

func TestAllClonesTargets(t *testing.T) {
	b := DefaultBindings()
	all := b.All()
	all[0].Target.Host = "changed"

	got, _ := b.Resolve(TriggerDraw)
	if got.Target.String() != "fetchpet://draw" {
		t.Errorf("table target changed to %q", got.Target)
	}
}

func TestNewBindingsRejectsBadTables(t *testing.T) {
	if _, err := NewBindings(Binding{Trigger: "x"}); err == nil {
		t.Error("expected error for missing target")
	}
	dup := Binding{Trigger: "x", Target: DeepLink("x")}
	if _, err := NewBindings(dup, dup); err == nil {
		t.Error("expected error for duplicate trigger")
	}
}

func TestDispatchOpensBoundURI(t *testing.T) {
	rec := &recordingLauncher{}
	d := NewDispatcher(DispatcherConfig{Launcher: rec, Logger: quietLogger()})

	if !d.Dispatch(context.Background(), TriggerDraw) {
		t.Fatal("Dispatch(draw) = false")
	}
	if !d.Dispatch(context.Background(), TriggerComplete) {
		t.Fatal("Dispatch(complete) = false")
	}
	d.Wait()

	got := rec.opened()
	if len(got) != 2 {
		t.Fatalf("opened %v, want 2 URIs", got)
	}
	seen := map[string]bool{got[0]: true, got[1]: true}
	if !seen["fetchpet://draw"] || !seen["fetchpet://complete"] {
		t.Errorf("opened %v", got)
	}
}

func TestDispatchUnknownTriggerIsIgnored(t *testing.T) {
	rec := &recordingLauncher{}
	d := NewDispatcher(DispatcherConfig{Launcher: rec, Logger: quietLogger()})

	if d.Dispatch(context.Background(), "feed") {
		t.Error("Dispatch(feed) = true, want false")
	}
	d.Wait()
	if n := len(rec.opened()); n != 0 {
		t.Errorf("opened %d URIs, want 0", n)
	}
}

func TestDispatchDoesNotBlock(t *testing.T) {
	bl := &blockingLauncher{release: make(chan struct{})}
	d := NewDispatcher(DispatcherConfig{Launcher: bl, Logger: quietLogger()})

	done := make(chan struct{})
	go func() {
		d.Dispatch(context.Background(), TriggerDraw)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked on the launcher")
	}

	close(bl.release)
	d.Wait()
}

func TestDispatchSurvivesCallerCancel(t *testing.T) {
	rec := &recordingLauncher{}
	d := NewDispatcher(DispatcherConfig{Launcher: rec, Logger: quietLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, TriggerComplete)
	d.Wait()

	if got := rec.opened(); len(got) != 1 || got[0] != "fetchpet://complete" {
		t.Errorf("opened %v after caller cancel", got)
	}
}

func TestDispatchLaunchErrorIsSwallowed(t *testing.T) {
	rec := &recordingLauncher{err: errors.New("no handler")}
	d := NewDispatcher(DispatcherConfig{Launcher: rec, Logger: quietLogger()})

	if !d.Dispatch(context.Background(), TriggerDraw) {
		t.Error("Dispatch should report the binding even when launch fails")
	}
	d.Wait()
}

func TestExecLauncher(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	if err := (ExecLauncher{Command: "true"}).Open(context.Background(), "fetchpet://draw"); err != nil {
		t.Errorf("Open with true: %v", err)
	}

	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	if err := (ExecLauncher{Command: "false"}).Open(context.Background(), "fetchpet://draw"); err == nil {
		t.Error("Open with false should fail")
	}
}
