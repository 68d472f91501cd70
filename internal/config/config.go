// Package config provides YAML-based configuration for slidelink: palette,
// board highlight, asset locations, window, storage and SSH server settings.
package config

import (
	"fmt"

	"github.com/vovakirdan/slidelink/internal/palette"
	"github.com/vovakirdan/slidelink/internal/render"
)

// Config is the full application configuration.
type Config struct {
	Board   BoardConfig    `yaml:"board"`
	Palette []PaletteEntry `yaml:"palette"`
	Assets  AssetsConfig   `yaml:"assets"`
	Window  WindowConfig   `yaml:"window"`
	Storage StorageConfig  `yaml:"storage"`
	Server  ServerConfig   `yaml:"server"`

	// Source names the file the config was read from.
	Source string `yaml:"-"`
}

// BoardConfig styles the board overlay.
type BoardConfig struct {
	Highlight      string `yaml:"highlight"`
	HighlightWidth int    `yaml:"highlight_width"`
}

// PaletteEntry is one row of the color table.
type PaletteEntry struct {
	Color  string `yaml:"color"`
	Column int    `yaml:"column"`
}

// AssetsConfig locates the atlas and level files.
type AssetsConfig struct {
	Atlas  string `yaml:"atlas"`
	Levels string `yaml:"levels"`
}

// WindowConfig sets up the graphical front-end.
type WindowConfig struct {
	Scale float64 `yaml:"scale"`
	Title string  `yaml:"title"`
}

// StorageConfig locates the preferences database.
type StorageConfig struct {
	DB string `yaml:"db"`
}

// ServerConfig sets up the SSH front-end.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	HostKey string `yaml:"host_key"`
}

// PaletteTable converts the configured palette into palette entries.
func (c Config) PaletteTable() ([]palette.Entry, error) {
	if len(c.Palette) == 0 {
		return palette.Default(), nil
	}
	table := make([]palette.Entry, len(c.Palette))
	for i, e := range c.Palette {
		col, err := palette.ParseHex(e.Color)
		if err != nil {
			return nil, fmt.Errorf("config: palette entry %d: %w", i, err)
		}
		table[i] = palette.Entry{Color: col, Column: e.Column}
	}
	if err := palette.Validate(table); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return table, nil
}

// RenderOptions converts the board section into render options.
func (c Config) RenderOptions() (render.Options, error) {
	opts := render.Options{HighlightWidth: c.Board.HighlightWidth}
	if c.Board.Highlight != "" {
		col, err := palette.ParseHex(c.Board.Highlight)
		if err != nil {
			return render.Options{}, fmt.Errorf("config: board highlight: %w", err)
		}
		opts.Highlight = col
	}
	return opts, nil
}

// Validate checks values the loaders cannot default.
func (c Config) Validate() error {
	if _, err := c.PaletteTable(); err != nil {
		return err
	}
	if _, err := c.RenderOptions(); err != nil {
		return err
	}
	if c.Window.Scale < 0 {
		return fmt.Errorf("config: window scale %v must not be negative", c.Window.Scale)
	}
	return nil
}
