// Package config handles loading and saving spot configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/spot/config.yaml
//   - State:   ~/.local/state/spot/ (layout snapshots)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

// OverlayConfig controls the dimming surface and its timings.
type OverlayConfig struct {
	TintColor        string        `yaml:"tint_color,omitempty"`
	TintOpacity      float64       `yaml:"tint_opacity,omitempty"`
	TextColor        string        `yaml:"text_color,omitempty"` // colour dimmed text fades from
	CornerRadius     int           `yaml:"corner_radius,omitempty"`
	OuterMargin      int           `yaml:"outer_margin,omitempty"`
	CloseDelay       time.Duration `yaml:"close_delay,omitempty"`
	WidthSettleDelay time.Duration `yaml:"width_settle_delay,omitempty"`
	FadeDuration     time.Duration `yaml:"fade_duration,omitempty"`
	FadeSteps        int           `yaml:"fade_steps,omitempty"`
}

// BubbleConfig controls message bubbles.
type BubbleConfig struct {
	MaxWidth      int                     `yaml:"max_width,omitempty"`
	MarkdownStyle string                  `yaml:"markdown_style,omitempty"` // auto, dark, light, notty
	Metrics       spotlight.BubbleMetrics `yaml:"metrics"`
}

// KeyConfig lists the keys bound to overlay actions.
type KeyConfig struct {
	Next     []string `yaml:"next,omitempty"`
	Activate []string `yaml:"activate,omitempty"` // taps the highlighted element
	Close    []string `yaml:"close,omitempty"`
}

// TourConfig points the demo at a tour file.
type TourConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`
}

// Config is the top-level configuration for spot.
type Config struct {
	Overlay OverlayConfig `yaml:"overlay"`
	Bubble  BubbleConfig  `yaml:"bubble"`
	Keys    KeyConfig     `yaml:"keys"`
	Tour    TourConfig    `yaml:"tour,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Overlay: OverlayConfig{
			TintColor:        spotlight.DefaultTint.Color,
			TintOpacity:      spotlight.DefaultTint.Opacity,
			TextColor:        spotlight.DefaultTextColor,
			CornerRadius:     spotlight.DefaultCornerRadius,
			OuterMargin:      spotlight.DefaultOuterMargin,
			CloseDelay:       spotlight.DefaultCloseDelay,
			WidthSettleDelay: spotlight.DefaultWidthSettleDelay,
			FadeDuration:     spotlight.DefaultFadeDuration,
			FadeSteps:        spotlight.DefaultFadeSteps,
		},
		Bubble: BubbleConfig{
			MaxWidth:      spotlight.DefaultMessageMaxWidth,
			MarkdownStyle: "auto",
			Metrics:       spotlight.DefaultBubbleMetrics,
		},
		Keys: KeyConfig{
			Next:     []string{"n", "right", "tab"},
			Activate: []string{"enter", " "},
			Close:    []string{"esc", "q"},
		},
	}
}

// ConfigDir returns the XDG config directory for spot.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "spot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spot")
}

// StateDir returns the XDG state directory for spot.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "spot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "spot")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Keys missing from the file
// keep their defaults. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Tour.Path = expandHome(cfg.Tour.Path)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	o := c.Overlay
	if o.TintOpacity < 0 || o.TintOpacity > 1 {
		errs = append(errs, fmt.Errorf("overlay.tint_opacity %v not in [0,1]", o.TintOpacity))
	}
	if o.CornerRadius < 0 {
		errs = append(errs, fmt.Errorf("overlay.corner_radius %d is negative", o.CornerRadius))
	}
	if o.OuterMargin < 0 {
		errs = append(errs, fmt.Errorf("overlay.outer_margin %d is negative", o.OuterMargin))
	}
	for name, d := range map[string]time.Duration{
		"close_delay":        o.CloseDelay,
		"width_settle_delay": o.WidthSettleDelay,
		"fade_duration":      o.FadeDuration,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("overlay.%s %v is negative", name, d))
		}
	}
	if c.Bubble.MaxWidth < 0 {
		errs = append(errs, fmt.Errorf("bubble.max_width %d is negative", c.Bubble.MaxWidth))
	}
	switch c.Bubble.MarkdownStyle {
	case "", "auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
	default:
		errs = append(errs, fmt.Errorf("bubble.markdown_style %q is not a known style", c.Bubble.MarkdownStyle))
	}
	if len(c.Keys.Next) == 0 && len(c.Keys.Close) == 0 {
		errs = append(errs, errors.New("keys: at least one next or close key is required"))
	}
	return errors.Join(errs...)
}

// Tint returns the configured overlay tint.
func (c Config) Tint() spotlight.Tint {
	return spotlight.Tint{Color: c.Overlay.TintColor, Opacity: c.Overlay.TintOpacity}
}

// ManagerOptions converts the overlay settings into manager options. The
// fader is left to the host, which owns the scheduler.
func (c Config) ManagerOptions() []spotlight.Option {
	return []spotlight.Option{
		spotlight.WithOverlayTint(c.Tint()),
		spotlight.WithOuterMargin(c.Overlay.OuterMargin),
		spotlight.WithCloseDelay(c.Overlay.CloseDelay),
		spotlight.WithWidthSettleDelay(c.Overlay.WidthSettleDelay),
		spotlight.WithFadeDuration(c.Overlay.FadeDuration),
		spotlight.WithBubbleMetrics(c.Bubble.Metrics),
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
