// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/devconsole/internal/geometry"
)

// Default configuration values.
const (
	DefaultCorner         = "top-left"
	DefaultVelocityWindow = 100 * time.Millisecond
	DefaultHintDuration   = 5 * time.Second
	DefaultTapGuard       = 100 * time.Millisecond
	DefaultHintMaxWidth   = 40
	DefaultSink           = "auto"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "5s", "100ms", "1m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '100ms' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the devconsole configuration.
type Config struct {
	Control   ControlConfig   `toml:"control"`
	Hint      HintConfig      `toml:"hint"`
	Output    OutputConfig    `toml:"output"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// ControlConfig holds the floating control's placement settings.
// Metrics are in terminal cells; velocity is cells per second.
type ControlConfig struct {
	Corner         string           `toml:"corner"`          // "top-left", "top-right", "bottom-left", "bottom-right"
	VelocityWindow Duration         `toml:"velocity_window"` // motion sampled for release velocity
	Metrics        geometry.Metrics `toml:"metrics"`
}

// HintConfig holds the latest-entry hint settings.
type HintConfig struct {
	Duration Duration `toml:"duration"`  // how long the hint stays up
	TapGuard Duration `toml:"tap_guard"` // taps ignored this long after a drag
	MaxWidth int      `toml:"max_width"` // cells
}

// OutputConfig holds where printed messages are forwarded.
type OutputConfig struct {
	Sink string `toml:"sink"` // auto, stdout, stderr, none, or a file path
}

// ClipboardConfig holds clipboard settings.
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// TerminalMetrics returns control metrics sized for a terminal grid: a 3x3
// cell button, one row reserved for the title and one for the key bar.
func TerminalMetrics() geometry.Metrics {
	return geometry.Metrics{
		Padding:           1,
		ControlDiameter:   3,
		TopSafeArea:       1,
		BottomSafeArea:    1,
		VelocityThreshold: 60,
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Control: ControlConfig{
			Corner:         DefaultCorner,
			VelocityWindow: Duration(DefaultVelocityWindow),
			Metrics:        TerminalMetrics(),
		},
		Hint: HintConfig{
			Duration: Duration(DefaultHintDuration),
			TapGuard: Duration(DefaultTapGuard),
			MaxWidth: DefaultHintMaxWidth,
		},
		Output: OutputConfig{
			Sink: DefaultSink,
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "devconsole", "config.toml")
}

// StatePath returns the path to the state directory.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func StatePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "devconsole")
}

// OutputLogPath returns the file printed messages go to when the terminal
// is owned by the TUI.
func OutputLogPath() string {
	return filepath.Join(StatePath(), "output.log")
}

// DebugLogPath returns the file devconsole's own logs go to.
func DebugLogPath() string {
	return filepath.Join(StatePath(), "debug.log")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Marshal returns the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := geometry.ParseCorner(c.Control.Corner); err != nil {
		return err
	}

	m := c.Control.Metrics
	if m.Padding < 0 || m.TopSafeArea < 0 || m.BottomSafeArea < 0 {
		return fmt.Errorf("padding and safe areas must not be negative")
	}
	if m.ControlDiameter <= 0 {
		return fmt.Errorf("control_diameter must be positive, got %v", m.ControlDiameter)
	}
	if m.VelocityThreshold <= 0 {
		return fmt.Errorf("velocity_threshold must be positive, got %v", m.VelocityThreshold)
	}
	if c.Control.VelocityWindow <= 0 {
		return fmt.Errorf("velocity_window must be positive, got %s", c.Control.VelocityWindow.Duration())
	}

	if c.Hint.Duration <= 0 {
		return fmt.Errorf("hint duration must be positive, got %s", c.Hint.Duration.Duration())
	}
	if c.Hint.TapGuard <= 0 {
		return fmt.Errorf("tap_guard must be positive, got %s", c.Hint.TapGuard.Duration())
	}
	if c.Hint.MaxWidth < 10 {
		return fmt.Errorf("hint max_width must be at least 10, got %d", c.Hint.MaxWidth)
	}

	if c.Output.Sink == "" {
		return fmt.Errorf("output sink must not be empty")
	}

	return nil
}

// StartCorner returns the configured starting corner.
func (c *Config) StartCorner() geometry.Corner {
	corner, err := geometry.ParseCorner(c.Control.Corner)
	if err != nil {
		return geometry.TopLeft
	}
	return corner
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	path := StatePath()
	if path == "" {
		return errors.New("unable to determine state directory")
	}
	return os.MkdirAll(path, 0755)
}
