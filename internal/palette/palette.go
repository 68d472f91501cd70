// Package palette maps logical piece colors to display colors and texture
// atlas columns.
//
// Entries 0 (background / connector pieces) and 1 (walls) are reserved.
// Piece color index i resolves to entry i+2. The non-reserved entries may be
// shuffled once, when the palette is built, and are fixed afterwards.
package palette

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/slidelink/internal/core"
)

// Reserved palette slots.
const (
	NoColorIdx = 0
	WallIdx    = 1
	Reserved   = 2
	Size       = 10
)

// Fallback is the neutral color used for color indices the palette does not know.
var Fallback = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

// Entry pairs a display color with its atlas column.
type Entry struct {
	Color  color.RGBA
	Column int
}

// Config selects the palette table and whether it is shuffled. It is built
// once at startup from the persisted preference.
type Config struct {
	RandomColors bool
	// Table overrides the default table when non-nil.
	Table []Entry
}

// Palette is the session's resolved color table.
type Palette struct {
	entries  []Entry
	logger   *log.Logger
	reported map[int]bool
}

// Default returns the built-in table.
func Default() []Entry {
	hexes := []string{
		"#090710", "#8c8c8c", "#4f3718", "#22614f", "#66c360",
		"#130e3a", "#4b4b87", "#c962dd", "#e6e86a", "#e33b3b",
	}
	entries := make([]Entry, len(hexes))
	for i, h := range hexes {
		c, _ := ParseHex(h)
		entries[i] = Entry{Color: c, Column: i}
	}
	return entries
}

// New builds a palette. When cfg.RandomColors is set the non-reserved entries
// are permuted with rng; the reserved entries never move.
func New(cfg Config, rng *rand.Rand, logger *log.Logger) (*Palette, error) {
	table := cfg.Table
	if table == nil {
		table = Default()
	}
	if err := Validate(table); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	entries := make([]Entry, len(table))
	copy(entries, table)

	if cfg.RandomColors && rng != nil {
		rest := entries[Reserved:]
		rng.Shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})
		logger.Debug("palette shuffled")
	}

	return &Palette{
		entries:  entries,
		logger:   logger,
		reported: make(map[int]bool),
	}, nil
}

// Validate checks that a table has the expected size and that every atlas
// column exists in the atlas.
func Validate(table []Entry) error {
	if len(table) != Size {
		return fmt.Errorf("palette: expected %d entries, got %d", Size, len(table))
	}
	for i, e := range table {
		if e.Column < 0 || e.Column >= core.AtlasColumns {
			return fmt.Errorf("palette: entry %d: atlas column %d out of range", i, e.Column)
		}
	}
	return nil
}

// Entries returns a copy of the resolved table.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// lookup returns the entry for a piece color index.
func (p *Palette) lookup(colorIndex int) (Entry, bool) {
	idx := colorIndex + Reserved
	if colorIndex < 0 || idx >= len(p.entries) {
		if !p.reported[colorIndex] {
			p.reported[colorIndex] = true
			p.logger.Error("color not implemented", "color", colorIndex, "palette_size", len(p.entries))
		}
		return Entry{}, false
	}
	return p.entries[idx], true
}

// ResolveDisplayColor returns the display color of a piece. Black pieces use
// the background color. Unknown indices are logged and drawn in Fallback.
func (p *Palette) ResolveDisplayColor(colorIndex int, black bool) color.RGBA {
	if black {
		return p.entries[NoColorIdx].Color
	}
	e, ok := p.lookup(colorIndex)
	if !ok {
		return Fallback
	}
	return e.Color
}

// ResolveAtlasColumn returns the atlas column of a (non-black) piece color.
// Unknown indices are logged and map to the background column.
func (p *Palette) ResolveAtlasColumn(colorIndex int) int {
	e, ok := p.lookup(colorIndex)
	if !ok {
		return p.BackgroundColumn()
	}
	return e.Column
}

// BackgroundColumn is the atlas column of black pieces.
func (p *Palette) BackgroundColumn() int {
	return p.entries[NoColorIdx].Column
}

// WallColumn is the atlas column of wall and emerge cells.
func (p *Palette) WallColumn() int {
	return p.entries[WallIdx].Column
}

// WallColor is the flat color of wall and emerge cells.
func (p *Palette) WallColor() color.RGBA {
	return p.entries[WallIdx].Color
}

// ColumnColor returns the display color drawn in the given atlas column.
func (p *Palette) ColumnColor(column int) (color.RGBA, bool) {
	for _, e := range p.entries {
		if e.Column == column {
			return e.Color, true
		}
	}
	return color.RGBA{}, false
}

// IsBlackPiece reports whether a piece renders as a neutral connector: its
// potential connections are neither none nor all four directions, and it is
// currently using every one of them.
func IsBlackPiece(canConnect, connected core.ConnMask) bool {
	if canConnect == core.ConnNone || canConnect == core.ConnAll {
		return false
	}
	return canConnect == connected
}

// ParseHex parses a "#rrggbb" color.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("palette: invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex formats a color as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
