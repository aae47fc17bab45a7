package cgi

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config describes a toolkit application: window attributes, the clear
// color and rendering behavior. Zero values are filled in by
// DefaultConfig; users either chain With* calls or load a TOML file.
type Config struct {
	// Title is the window title.
	Title string `toml:"title"`

	// Width and Height are the initial inner size of the window in
	// physical pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// ClearColor is the background color the screen is cleared to before
	// the scene graph redraws, as an HTML color string.
	ClearColor string `toml:"clear_color"`

	// ScaleFactor overrides the display scale factor used for layout.
	// Zero means 1.0.
	ScaleFactor float64 `toml:"scale_factor"`

	// ContinuousRender requests a redraw every VSync instead of rendering
	// only on demand.
	ContinuousRender bool `toml:"continuous_render"`
}

// DefaultConfig returns the configuration used when nothing is specified:
// an 800x600 window cleared to white.
func DefaultConfig() Config {
	return Config{
		Title:       "cgi",
		Width:       800,
		Height:      600,
		ClearColor:  "#FFFFFF",
		ScaleFactor: 1.0,
	}
}

// LoadConfig reads a TOML file and overlays it on DefaultConfig.
// Unset fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("cgi: load config %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithTitle sets the window title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize sets the initial window size in physical pixels.
func (c Config) WithSize(width, height int) Config {
	c.Width, c.Height = width, height
	return c
}

// WithClearColor sets the background color as an HTML color string.
func (c Config) WithClearColor(s string) Config {
	c.ClearColor = s
	return c
}

// WithScaleFactor overrides the display scale factor used for layout.
func (c Config) WithScaleFactor(sf float64) Config {
	c.ScaleFactor = sf
	return c
}

// WithContinuousRender toggles VSync-driven rendering.
func (c Config) WithContinuousRender(on bool) Config {
	c.ContinuousRender = on
	return c
}

// Clear returns the parsed clear color. Unparseable strings fall back
// to white.
func (c Config) Clear() RGBA {
	col, err := ParseColor(c.ClearColor)
	if err != nil {
		return White
	}
	return col
}

// Scale returns the effective scale factor, defaulting zero to 1.0.
func (c Config) Scale() float32 {
	if c.ScaleFactor <= 0 {
		return 1.0
	}
	return float32(c.ScaleFactor)
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if _, err := ParseColor(c.ClearColor); err != nil {
		return err
	}
	return nil
}
