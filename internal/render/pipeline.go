// Package render draws the board onto a Surface. Every state change triggers
// a full redraw; there is no incremental update.
package render

import (
	"image"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/autotile"
	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/engine"
	"github.com/vovakirdan/slidelink/internal/palette"
)

// DefaultHighlight is the selection border color.
var DefaultHighlight = color.RGBA{R: 0x32, G: 0xcd, B: 0x32, A: 0xff}

// DefaultHighlightWidth is the selection border width in board pixels.
const DefaultHighlightWidth = 3

// Board is the read-only view of the game the pipeline queries.
type Board interface {
	Cell(x, y int) engine.CellRef
	Kind(ref engine.CellRef) core.CellKind
	Color(ref engine.CellRef) int
	CanConnect(ref engine.CellRef) core.ConnMask
	Connected(ref engine.CellRef) core.ConnMask
}

// Options tune the pipeline.
type Options struct {
	Highlight      color.RGBA
	HighlightWidth int
}

// Pipeline renders one board with one palette.
type Pipeline struct {
	board   Board
	pal     *palette.Palette
	opts    Options
	logger  *log.Logger
	loaded  bool
	redraws int
}

// New returns a pipeline that starts in fallback mode until SetAtlasLoaded.
func New(board Board, pal *palette.Palette, opts Options, logger *log.Logger) *Pipeline {
	if opts.Highlight == (color.RGBA{}) {
		opts.Highlight = DefaultHighlight
	}
	if opts.HighlightWidth <= 0 {
		opts.HighlightWidth = DefaultHighlightWidth
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{board: board, pal: pal, opts: opts, logger: logger}
}

// SetAtlasLoaded switches between textured and flat rendering.
func (p *Pipeline) SetAtlasLoaded(loaded bool) { p.loaded = loaded }

// AtlasLoaded reports whether textured rendering is active.
func (p *Pipeline) AtlasLoaded() bool { return p.loaded }

// Redraws returns how many frames have been drawn.
func (p *Pipeline) Redraws() int { return p.redraws }

type cellInfo struct {
	kind      core.CellKind
	color     int
	connected core.ConnMask
	black     bool
}

func (p *Pipeline) query(x, y int) cellInfo {
	ref := p.board.Cell(x, y)
	info := cellInfo{kind: p.board.Kind(ref)}
	if info.kind != core.CellPiece {
		return info
	}
	info.color = p.board.Color(ref)
	info.connected = p.board.Connected(ref)
	info.black = palette.IsBlackPiece(p.board.CanConnect(ref), info.connected)
	return info
}

// Redraw draws the whole board and, when sel is non-nil, the selection
// highlight.
func (p *Pipeline) Redraw(s Surface, sel *core.Coord) {
	p.redraws++
	s.Clear()

	var cells [core.BoardH][core.BoardW]cellInfo
	for y := 0; y < core.BoardH; y++ {
		for x := 0; x < core.BoardW; x++ {
			cells[y][x] = p.query(x, y)
		}
	}

	if p.loaded {
		p.drawTiled(s, &cells)
	} else {
		p.drawFlat(s, &cells)
	}

	if sel != nil && sel.InBoard() {
		s.StrokeRect(cellRect(sel.X, sel.Y), p.opts.HighlightWidth, p.opts.Highlight)
	}
}

func (p *Pipeline) drawFlat(s Surface, cells *[core.BoardH][core.BoardW]cellInfo) {
	for y := 0; y < core.BoardH; y++ {
		for x := 0; x < core.BoardW; x++ {
			c := cells[y][x]
			switch {
			case c.kind == core.CellPiece:
				s.FillRect(cellRect(x, y), p.pal.ResolveDisplayColor(c.color, c.black))
			case c.kind.IsStatic():
				s.FillRect(cellRect(x, y), p.pal.WallColor())
			}
		}
	}
}

func (p *Pipeline) drawTiled(s Surface, cells *[core.BoardH][core.BoardW]cellInfo) {
	cache := autotile.NewCache()
	for y := 0; y < core.BoardH; y++ {
		for x := 0; x < core.BoardW; x++ {
			c := cells[y][x]
			cache.Set(x, y, autotile.Identity(c.kind, c.color, c.black, p.pal))
		}
	}

	for y := 0; y < core.BoardH; y++ {
		for x := 0; x < core.BoardW; x++ {
			c := cells[y][x]
			switch {
			case c.kind == core.CellPiece:
				blits, ok := autotile.Compose(cache, x, y, c.connected)
				if !ok {
					continue
				}
				for _, b := range blits {
					s.Blit(b.Src, b.Dst)
				}
			case c.kind.IsStatic():
				if b, ok := autotile.Static(cache, x, y); ok {
					s.Blit(b.Src, b.Dst)
				}
			}
		}
	}
}

func cellRect(x, y int) image.Rectangle {
	return image.Rect(x*core.CellSize, y*core.CellSize, (x+1)*core.CellSize, (y+1)*core.CellSize)
}
