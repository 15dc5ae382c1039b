// fetchpet-widget hosts the FetchPet home-screen widget in a terminal.
//
// It reads the snapshot the FetchPet application publishes to its shared
// preference store, renders one card per widget instance, and opens the
// application's deep links when a button is activated.
//
// Usage:
//
//	fetchpet-widget [flags]
//
// Flags:
//
//	-config string     Path to configuration file (default: ~/.config/fetchpet-widget/config.toml)
//	-tui               Launch the interactive widget host
//	-json              Print the rendered views as JSON
//	-activate string   Activate a button (draw|complete) and exit
//	-instances string  Comma-separated widget instance ids (overrides config)
//	-put key=value     Write a preference entry as the host application would (repeatable)
//	-verbose           Enable verbose logging
//	-version           Print version and exit
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/fetchpet/fetchpet-widget/pkg/action"
	"github.com/fetchpet/fetchpet-widget/pkg/config"
	"github.com/fetchpet/fetchpet-widget/pkg/petimage"
	"github.com/fetchpet/fetchpet-widget/pkg/prefs"
	"github.com/fetchpet/fetchpet-widget/pkg/terminal"
	"github.com/fetchpet/fetchpet-widget/pkg/theme"
	"github.com/fetchpet/fetchpet-widget/pkg/tui"
	"github.com/fetchpet/fetchpet-widget/pkg/widget"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// putFlags collects repeated -put key=value arguments.
type putFlags []string

func (p *putFlags) String() string { return strings.Join(*p, ",") }

func (p *putFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*p = append(*p, v)
	return nil
}

func main() {
	var puts putFlags
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		runTUI      = flag.Bool("tui", false, "Launch the interactive widget host")
		printJSON   = flag.Bool("json", false, "Print the rendered views as JSON")
		activate    = flag.String("activate", "", "Activate a button (draw|complete) and exit")
		instances   = flag.String("instances", "", "Comma-separated widget instance ids (overrides config)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Var(&puts, "put", "Write a preference entry key=value (repeatable)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("fetchpet-widget %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *instances != "" {
		ids, err := parseInstances(*instances)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -instances: %v\n", err)
			os.Exit(1)
		}
		cfg.General.Instances = ids
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := ensureLogDir(cfg.General.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.General.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	if *verbose {
		logLevel = slog.LevelDebug
	}

	logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// The interactive host owns the screen, so it logs to the file only.
	var logOut io.Writer = io.MultiWriter(os.Stderr, logFile)
	if *runTUI {
		logOut = logFile
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	if len(puts) > 0 {
		if err := writePrefs(cfg, puts); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		logger.Debug("wrote preference entries", "count", len(puts))
		if !*runTUI && !*printJSON && *activate == "" {
			return
		}
	}

	th := theme.Get(cfg.Display.Theme)
	if cfg.Display.ThemeFile != "" {
		t, err := theme.LoadFile(cfg.Display.ThemeFile)
		if err != nil {
			logger.Warn("failed to load theme file, using configured theme", "path", cfg.Display.ThemeFile, "error", err)
		} else {
			th = t
		}
	} else if !theme.Has(cfg.Display.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.Display.Theme)
	}

	store, err := prefs.Open(prefs.Source{
		Backend: cfg.Prefs.Backend,
		Path:    cfg.PrefsPath(),
		Name:    cfg.Prefs.Name,
	})
	if err != nil {
		logger.Warn("preference store unavailable, rendering defaults", "error", err)
		store = prefs.Empty
	}

	var launcher action.Launcher
	if cfg.Actions.Opener != "" {
		launcher = action.ExecLauncher{Command: cfg.Actions.Opener, Args: cfg.Actions.OpenerArgs}
	}
	dispatcher := action.NewDispatcher(action.DispatcherConfig{
		Launcher: launcher,
		Timeout:  cfg.Actions.Timeout.Duration,
		Logger:   logger,
	})
	provider := widget.NewProvider(store, dispatcher, logger)

	caps := terminal.DetectCapabilities(cfg.Display.ImageProtocol)
	logger.Debug("terminal detected", "term", caps.Term, "protocol", caps.Protocol, "cols", caps.Size.Cols)
	pets := petimage.NewRenderer(petimage.Config{
		AssetsDir: cfg.Display.PetAssetsDir,
		Protocol:  caps.Protocol,
		CellW:     caps.Size.CellW,
		CellH:     caps.Size.CellH,
	})

	switch {
	case *activate != "":
		trigger := action.Trigger(strings.ToLower(*activate))
		if !provider.OnReceive(ctx, trigger) {
			fmt.Fprintf(os.Stderr, "unknown trigger %q (supported: draw, complete)\n", *activate)
			os.Exit(1)
		}
		dispatcher.Wait()

	case *runTUI:
		model := tui.NewModel(tui.Options{
			Provider:  provider,
			Instances: cfg.General.Instances,
			Refresh:   cfg.General.RefreshInterval.Duration,
			Theme:     th,
			Pets:      pets,
			CardWidth: cfg.Display.CardWidth,
			Context:   ctx,
		})
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			logger.Error("TUI error", "error", err)
			os.Exit(1)
		}
		dispatcher.Wait()

	case *printJSON:
		views := make(map[string]widget.View, len(cfg.General.Instances))
		provider.OnUpdate(widget.HostFunc(func(id int, v widget.View) {
			views[strconv.Itoa(id)] = v
		}), cfg.General.Instances)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views); err != nil {
			logger.Error("encoding views failed", "error", err)
			os.Exit(1)
		}

	default:
		tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		if !tty {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		provider.OnUpdate(widget.HostFunc(func(id int, v widget.View) {
			if tty {
				if img, ok := pets.Inline(v.PetImage, cfg.Display.CardWidth, 6); ok {
					fmt.Println(img)
				}
			}
			fmt.Println(tui.RenderCard(v, tui.CardOptions{
				Width:    cfg.Display.CardWidth,
				Theme:    th,
				Pets:     pets,
				Instance: id,
			}))
		}), cfg.General.Instances)
	}
}

// writePrefs stores each key=value in the configured store. Values that
// parse as integers are written as integers.
func writePrefs(cfg *config.Config, puts []string) error {
	if !strings.EqualFold(cfg.Prefs.Backend, "store") {
		return fmt.Errorf("-put requires the store backend, configured %q", cfg.Prefs.Backend)
	}
	store, err := prefs.NewStore(prefs.StoreConfig{Dir: cfg.Prefs.Dir, Name: cfg.Prefs.Name})
	if err != nil {
		return err
	}
	for _, kv := range puts {
		key, value, _ := strings.Cut(kv, "=")
		var err error
		if n, convErr := strconv.Atoi(value); convErr == nil {
			err = store.PutInt(key, n)
		} else {
			err = store.PutString(key, value)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", key, err)
		}
	}
	return nil
}

// parseInstances parses "1,2,5" into sorted ids. Repeated ids are
// rejected.
func parseInstances(s string) ([]int, error) {
	var ids []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("instance id %q: %w", part, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("instance id %d listed twice", id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no instance ids in %q", s)
	}
	sort.Ints(ids)
	return ids, nil
}

func ensureLogDir(logFile string) error {
	dir := filepath.Dir(logFile)
	return os.MkdirAll(dir, 0755)
}
