package action

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// Launcher hands a deep link to whatever opens the host application.
type Launcher interface {
	Open(ctx context.Context, uri string) error
}

// ExecLauncher opens URIs by running an external command with the URI as
// its final argument.
type ExecLauncher struct {
	Command string
	Args    []string
}

// DefaultOpener returns the platform URI opener command.
func DefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Open runs the opener and waits for it to exit.
func (l ExecLauncher) Open(ctx context.Context, uri string) error {
	name := l.Command
	if name == "" {
		name = DefaultOpener()
	}
	args := append(append([]string(nil), l.Args...), uri)

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("action: %s %s: %w (%s)", name, uri, err, out)
	}
	return nil
}

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	Bindings *Bindings
	Launcher Launcher
	// Timeout bounds each launch. Default: 10 seconds.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Dispatcher resolves triggers and launches their deep links without
// blocking the caller. Outcomes are only logged.
type Dispatcher struct {
	bindings *Bindings
	launcher Launcher
	timeout  time.Duration
	logger   *slog.Logger

	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Nil bindings use DefaultBindings and a
// nil launcher uses ExecLauncher with the platform opener.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Bindings == nil {
		cfg.Bindings = DefaultBindings()
	}
	if cfg.Launcher == nil {
		cfg.Launcher = ExecLauncher{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Dispatcher{
		bindings: cfg.Bindings,
		launcher: cfg.Launcher,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
	}
}

// Bindings returns the dispatcher's binding table.
func (d *Dispatcher) Bindings() *Bindings {
	return d.bindings
}

// Dispatch starts the launch bound to trigger and returns immediately. It
// reports false when no binding exists for trigger. The launch is detached
// from ctx cancellation but keeps its values.
func (d *Dispatcher) Dispatch(ctx context.Context, trigger Trigger) bool {
	b, ok := d.bindings.Resolve(trigger)
	if !ok {
		d.logger.Debug("ignoring activation without binding", "trigger", trigger)
		return false
	}

	uri := b.Target.String()
	d.logger.Info("dispatching deep link", "trigger", trigger, "action", b.Action, "uri", uri)

	launchCtx := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(launchCtx, d.timeout)
		defer cancel()
		if err := d.launcher.Open(ctx, uri); err != nil {
			d.logger.Warn("deep link launch failed", "uri", uri, "error", err)
		}
	}()
	return true
}

// Wait blocks until every launch started so far has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
