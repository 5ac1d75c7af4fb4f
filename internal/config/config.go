package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/spatialnav/internal/index"
)

// Hotkeys binds the navigation actions to X11 key strings.
type Hotkeys struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	// Reset clears focus. Empty disables the binding.
	Reset string `yaml:"reset"`
}

// Marker configures the border drawn around the focused window.
type Marker struct {
	Color     string `yaml:"color"`
	Thickness int    `yaml:"thickness"`
}

// Eligibility configures which document elements can receive focus in the
// resolve and browse commands. The desktop daemon always targets windows.
type Eligibility struct {
	Tags     []string `yaml:"tags"`
	Roles    []string `yaml:"roles"`
	Tabindex bool     `yaml:"tabindex"`
}

// Config represents the spatialnav configuration.
type Config struct {
	// Display is the X11 display to connect to (e.g. ":0"). Empty uses $DISPLAY.
	Display string `yaml:"display"`
	// XAuthority is the path to the X11 authority file. Empty uses $XAUTHORITY.
	XAuthority string `yaml:"xauthority"`

	Hotkeys Hotkeys `yaml:"hotkeys"`

	// ThrottleMS drops hotkey navigations arriving within this many
	// milliseconds of the last accepted one. 0 disables throttling.
	ThrottleMS int `yaml:"throttle_ms"`

	Marker Marker `yaml:"marker"`

	// BringIntoView moves a partially off-screen window back onto its
	// monitor when it receives focus.
	BringIntoView bool `yaml:"bring_into_view"`

	// IgnoreClasses lists WM_CLASS values never offered as focus targets.
	IgnoreClasses []string `yaml:"ignore_classes"`

	// ReconcileIntervalSeconds controls how often the daemon checks that the
	// focused window still exists. 0 disables the check.
	ReconcileIntervalSeconds int `yaml:"reconcile_interval_seconds"`

	Eligibility Eligibility `yaml:"eligibility"`

	LogLevel string `yaml:"log_level"`

	// MetricsListen is the address of the Prometheus endpoint, e.g.
	// "127.0.0.1:9464". Empty disables it.
	MetricsListen string `yaml:"metrics_listen"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	rules := index.DefaultRules()
	return &Config{
		Hotkeys: Hotkeys{
			Up:    "Mod4-Up",
			Down:  "Mod4-Down",
			Left:  "Mod4-Left",
			Right: "Mod4-Right",
			Reset: "Mod4-Escape",
		},
		ThrottleMS: 80,
		Marker: Marker{
			Color:     "#4A9EFF",
			Thickness: 4,
		},
		BringIntoView:            true,
		IgnoreClasses:            []string{},
		ReconcileIntervalSeconds: 2,
		Eligibility: Eligibility{
			Tags:     rules.Tags,
			Roles:    rules.Roles,
			Tabindex: rules.Tabindex,
		},
		LogLevel: "info",
	}
}

// ValidationError reports an invalid config value, optionally annotated with
// the file position it came from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	bindings := []struct {
		path  string
		value string
	}{
		{"hotkeys.up", c.Hotkeys.Up},
		{"hotkeys.down", c.Hotkeys.Down},
		{"hotkeys.left", c.Hotkeys.Left},
		{"hotkeys.right", c.Hotkeys.Right},
	}
	seen := make(map[string]string)
	for _, b := range bindings {
		key := strings.TrimSpace(b.value)
		if key == "" {
			return &ValidationError{Path: b.path, Err: fmt.Errorf("hotkey is required")}
		}
		if prev, ok := seen[strings.ToLower(key)]; ok {
			return &ValidationError{Path: b.path, Err: fmt.Errorf("%q is already bound to %s", key, prev)}
		}
		seen[strings.ToLower(key)] = b.path
	}
	if reset := strings.TrimSpace(c.Hotkeys.Reset); reset != "" {
		if prev, ok := seen[strings.ToLower(reset)]; ok {
			return &ValidationError{Path: "hotkeys.reset", Err: fmt.Errorf("%q is already bound to %s", reset, prev)}
		}
	}
	if c.ThrottleMS < 0 {
		return &ValidationError{Path: "throttle_ms", Err: fmt.Errorf("throttle_ms must be >= 0")}
	}
	if !hexColorPattern.MatchString(c.Marker.Color) {
		return &ValidationError{Path: "marker.color", Err: fmt.Errorf("color must be #RRGGBB")}
	}
	if c.Marker.Thickness < 1 || c.Marker.Thickness > 50 {
		return &ValidationError{Path: "marker.thickness", Err: fmt.Errorf("thickness must be between 1 and 50")}
	}
	if c.ReconcileIntervalSeconds < 0 {
		return &ValidationError{Path: "reconcile_interval_seconds", Err: fmt.Errorf("reconcile_interval_seconds must be >= 0")}
	}
	if len(c.Eligibility.Tags) == 0 && len(c.Eligibility.Roles) == 0 && !c.Eligibility.Tabindex {
		return &ValidationError{Path: "eligibility", Err: fmt.Errorf("at least one of tags, roles or tabindex must be set")}
	}
	for _, tag := range c.Eligibility.Tags {
		if strings.TrimSpace(tag) == "" {
			return &ValidationError{Path: "eligibility.tags", Err: fmt.Errorf("tags must not contain empty entries")}
		}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// Throttle returns the hotkey throttle interval.
func (c *Config) Throttle() time.Duration {
	return time.Duration(c.ThrottleMS) * time.Millisecond
}

// ReconcileInterval returns the stale-focus check interval.
func (c *Config) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileIntervalSeconds) * time.Second
}

// Rules returns the document eligibility rules. They do not apply to the
// desktop, whose elements are windows.
func (c *Config) Rules() index.Rules {
	return index.Rules{
		Tags:     append([]string(nil), c.Eligibility.Tags...),
		Roles:    append([]string(nil), c.Eligibility.Roles...),
		Tabindex: c.Eligibility.Tabindex,
	}
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IgnoresClass reports whether windows of the given WM_CLASS are skipped.
func (c *Config) IgnoresClass(class string) bool {
	for _, ignored := range c.IgnoreClasses {
		if strings.EqualFold(ignored, class) {
			return true
		}
	}
	return false
}

// WriteDefault writes the default configuration to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if exists, err := pathExists(path); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
