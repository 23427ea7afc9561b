// Command spot is a demo host for the spotlight overlay: a small fake app
// screen that walks the user through a tour of its buttons.
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	// Sets CI for machine-read runs before lipgloss first probes the terminal.
	_ "github.com/vanderheijden86/spotlight/internal/ttyguard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vanderheijden86/spotlight/pkg/config"
	"github.com/vanderheijden86/spotlight/pkg/export"
	"github.com/vanderheijden86/spotlight/pkg/metrics"
	"github.com/vanderheijden86/spotlight/pkg/tour"
	"github.com/vanderheijden86/spotlight/pkg/ui"
	"github.com/vanderheijden86/spotlight/pkg/version"
	"github.com/vanderheijden86/spotlight/pkg/watcher"
)

//go:embed default_tour.yaml
var defaultTour []byte

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file (default: $XDG_CONFIG_HOME/spot/config.yaml)")
	tourPath := flag.String("tour", "", "Tour file to run (default: built-in welcome tour)")
	watchFlag := flag.Bool("watch", false, "Reload the tour file when it changes")
	yesFlag := flag.Bool("yes", false, "Start the tour without asking")
	snapshot := flag.String("snapshot", "", "Render step --step headlessly to comma-separated .svg/.png/.json files and exit")
	step := flag.Int("step", 1, "Tour step to render with --snapshot")
	size := flag.String("size", "80x24", "Screen size for --snapshot, as WxH")
	layoutJSON := flag.Bool("layout-json", false, "Print the layout of step --step as JSON and exit")
	metricsFlag := flag.Bool("metrics", false, "Print layout/render timings and session counters on exit")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: spot [options]")
		fmt.Println("\nA spotlight onboarding overlay demo.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("spot %s\n", version.String())
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *tourPath != "" {
		cfg.Tour.Path = *tourPath
	}
	if *watchFlag {
		cfg.Tour.Watch = true
	}

	t, err := loadTour(cfg.Tour.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *snapshot != "" || *layoutJSON {
		w, h, err := parseSize(*size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		snap, err := snapshotStep(cfg, t, *step, w, h)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *layoutJSON {
			data, err := snap.MarshalIndent()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		}
		if *snapshot != "" {
			paths := strings.Split(*snapshot, ",")
			if err := export.WriteAll(context.Background(), snap, paths...); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", strings.Join(paths, ", "))
		}
		return
	}

	if !*yesFlag {
		ok, err := confirmTour(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			return
		}
	}

	var w *watcher.Watcher
	if cfg.Tour.Watch && cfg.Tour.Path != "" {
		w, err = watcher.NewWatcher(cfg.Tour.Path)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", cfg.Tour.Path, err)
			os.Exit(1)
		}
		defer w.Stop()
	}

	theme := ui.DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	if err := runTUIProgram(newModel(cfg, theme, t, w)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running spot: %v\n", err)
		os.Exit(1)
	}

	if *metricsFlag {
		printMetrics()
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func loadTour(path string) (*tour.Tour, error) {
	if path == "" {
		return tour.Parse(defaultTour)
	}
	return tour.Load(path)
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	return w, h, nil
}

// snapshotStep lays out one step of t on a w×h demo screen without a
// terminal.
func snapshotStep(cfg config.Config, t *tour.Tour, step, w, h int) (export.Snapshot, error) {
	if step < 1 || step > len(t.Steps) {
		return export.Snapshot{}, fmt.Errorf("step %d out of range (tour has %d)", step, len(t.Steps))
	}
	theme := ui.DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	s := newScreen(theme, w, h)
	o := ui.NewOverlay(s.window, theme, cfg)
	defer o.Dispose()

	instr, err := t.Steps[step-1].Instruction(s.window)
	if err != nil {
		return export.Snapshot{}, err
	}
	if _, err := o.Present(instr, nil); err != nil {
		return export.Snapshot{}, err
	}
	return export.FromManager(o.Manager(), s.window)
}

func confirmTour(t *tour.Tour) (bool, error) {
	start := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Take the %q tour?", t.Name)).
				Description(fmt.Sprintf("%d steps. Press q to leave at any time.", len(t.Steps))).
				Value(&start).
				Affirmative("Show me").
				Negative("Not now"),
		),
	).WithTheme(huh.ThemeDracula())
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		form = form.WithAccessible(true)
	}
	if err := form.Run(); err != nil {
		return false, err
	}
	return start, nil
}

func printMetrics() {
	fmt.Println("Timings:")
	for _, s := range metrics.AllTimingStats() {
		if s.Count == 0 {
			continue
		}
		fmt.Printf("  %-8s n=%-5d avg=%.3fms max=%.3fms\n", s.Name, s.Count, s.AvgMs, s.MaxMs)
	}
	fmt.Println("Counters:")
	for _, c := range metrics.AllCounters() {
		fmt.Printf("  %-20s %d\n", c.Name(), c.Value())
	}
}

func runTUIProgram(m tea.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set SPOT_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("SPOT_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
				case <-timer.C:
					p.Quit()
				}
			}()
		}
	}

	_, err := p.Run()
	return err
}
