package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Position is one of the nine anchor positions a panel may be pinned to.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionTopRight     Position = "top-right"
	PositionCenterLeft   Position = "center-left"
	PositionCenter       Position = "center"
	PositionCenterRight  Position = "center-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
	PositionBottomRight  Position = "bottom-right"
)

// ValidPositions returns all accepted position values, in table order.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft, PositionTopCenter, PositionTopRight,
		PositionCenterLeft, PositionCenter, PositionCenterRight,
		PositionBottomLeft, PositionBottomCenter, PositionBottomRight,
	}
}

func (p Position) valid() bool {
	for _, v := range ValidPositions() {
		if v == p {
			return true
		}
	}
	return false
}

// MarginConfig is the panel's distance from its anchored edges, in pixels.
// Negative values are permitted (they push the panel off-screen, which is
// the caller's prerogative, not this package's to second-guess).
type MarginConfig struct {
	Top    int `toml:"top"`
	Right  int `toml:"right"`
	Bottom int `toml:"bottom"`
	Left   int `toml:"left"`
}

// PanelConfig is the `[panel]` table.
type PanelConfig struct {
	Width             int          `toml:"width"`
	Height            int          `toml:"height"`
	Position          string       `toml:"position"`
	Theme             string       `toml:"theme"`
	Padding           float64      `toml:"padding"`
	Spacing           float64      `toml:"spacing"`
	BackgroundOpacity *float64     `toml:"background_opacity"`
	Margin            MarginConfig `toml:"margin"`
}

const (
	defaultWidth   = 400
	defaultHeight  = 150
	minPanelExtent = 1
	maxPanelExtent = 10000
)

// WidgetConfig is one `[[widgets]]` block. Config is the opaque per-widget
// table; its schema is owned by the widget factory named by Type (see
// internal/widget).
type WidgetConfig struct {
	Type    string         `toml:"type"`
	Enabled *bool          `toml:"enabled"`
	Config  map[string]any `toml:"config"`
}

// IsEnabled reports whether the widget should be instantiated. Absent
// defaults to true, matching the documented config format.
func (w WidgetConfig) IsEnabled() bool {
	return w.Enabled == nil || *w.Enabled
}

// Config is the top-level configuration file shape.
type Config struct {
	Panel   PanelConfig    `toml:"panel"`
	Widgets []WidgetConfig `toml:"widgets"`
}

// Default returns the configuration used when no file is present and the
// baseline every loaded file is merged on top of.
func Default() *Config {
	return &Config{
		Panel: PanelConfig{
			Width:    defaultWidth,
			Height:   defaultHeight,
			Position: string(PositionTopRight),
			Theme:    "cosmic_dark",
			Padding:  20.0,
			Spacing:  10.0,
		},
	}
}

// Path returns the location of the configuration file, honoring
// $XDG_CONFIG_HOME and falling back to $HOME/.config.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cosmic-desktop-widget", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cosmic-desktop-widget", "config.toml"), nil
}

// Load reads and validates the configuration file at Path(). A missing file
// is not an error: it yields Default(). A present-but-invalid file is an
// error the caller decides how to handle (see internal/loop for the
// reload policy of keeping the previous config on failure).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads and validates a configuration file at an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyZeroDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyZeroDefaults replaces a 0 width/height with the documented default.
func (c *Config) applyZeroDefaults() {
	if c.Panel.Width == 0 {
		c.Panel.Width = defaultWidth
	}
	if c.Panel.Height == 0 {
		c.Panel.Height = defaultHeight
	}
}

// Validate checks the configuration against the documented constraints,
// returning an error naming the offending field.
func (c *Config) Validate() error {
	if c.Panel.Width < minPanelExtent || c.Panel.Width > maxPanelExtent {
		return fmt.Errorf("panel.width must be between %d and %d, got %d", minPanelExtent, maxPanelExtent, c.Panel.Width)
	}
	if c.Panel.Height < minPanelExtent || c.Panel.Height > maxPanelExtent {
		return fmt.Errorf("panel.height must be between %d and %d, got %d", minPanelExtent, maxPanelExtent, c.Panel.Height)
	}
	if !Position(c.Panel.Position).valid() {
		return fmt.Errorf("panel.position %q is invalid, must be one of: %v", c.Panel.Position, ValidPositions())
	}
	if c.Panel.BackgroundOpacity != nil {
		if *c.Panel.BackgroundOpacity < 0 || *c.Panel.BackgroundOpacity > 1 {
			return fmt.Errorf("panel.background_opacity must be in [0,1], got %v", *c.Panel.BackgroundOpacity)
		}
	}
	for i, w := range c.Widgets {
		if w.Type == "" {
			return fmt.Errorf("widgets[%d].type is required", i)
		}
	}
	return nil
}

// ReloadKind distinguishes config changes that can be applied in place from
// those that require destroying and rebuilding the layer surface.
type ReloadKind int

const (
	ReloadInPlace ReloadKind = iota
	ReloadRebuild
)

// Diff compares two panel geometries/anchors and decides the reload kind.
// Any other field (theme, opacity override, padding, spacing, widget
// configs, enable flags) is always applicable in place.
func Diff(old, next *Config) ReloadKind {
	if old == nil || next == nil {
		return ReloadRebuild
	}
	if old.Panel.Width != next.Panel.Width ||
		old.Panel.Height != next.Panel.Height ||
		old.Panel.Position != next.Panel.Position ||
		old.Panel.Margin != next.Panel.Margin {
		return ReloadRebuild
	}
	return ReloadInPlace
}
