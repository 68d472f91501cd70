package tui

import (
	"image"
	"image/color"

	"github.com/vovakirdan/slidelink/internal/autotile"
	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/palette"
)

// Each board cell is drawn as cellCols characters by cellRows lines.
const (
	cellCols = 4
	cellRows = 2

	BoardCols = core.BoardW * cellCols
	BoardRows = core.BoardH * cellRows
)

// boardSurface draws board pixel space onto a character screen. Blits do not
// copy pixels: the atlas is only sampled for each column's fill and outline
// colors, and the sub-tile a quadrant came from picks its box-drawing glyphs.
type boardSurface struct {
	screen *core.Screen
	atlas  image.Image
	bg     string
	cols   map[int][2]string
}

func newBoardSurface(bg color.RGBA) *boardSurface {
	return &boardSurface{
		screen: core.NewScreen(BoardCols, BoardRows),
		bg:     palette.Hex(bg),
		cols:   make(map[int][2]string),
	}
}

// SetAtlas sets the image blits sample colors from.
func (s *boardSurface) SetAtlas(img image.Image) {
	s.atlas = img
	clear(s.cols)
}

func (s *boardSurface) Clear() {
	s.screen.DrawRect(core.NewRect(0, 0, BoardCols, BoardRows), core.Cell{Rune: ' ', Style: core.Style{BG: s.bg}})
}

func (s *boardSurface) FillRect(r image.Rectangle, c color.RGBA) {
	s.fill(charRect(r), palette.Hex(c))
}

func (s *boardSurface) fill(r core.Rect, bg string) {
	s.screen.DrawRect(r, core.Cell{Rune: ' ', Style: core.Style{BG: bg}})
}

// StrokeRect draws a box around the characters covering r. The width is
// always one character.
func (s *boardSurface) StrokeRect(r image.Rectangle, _ int, c color.RGBA) {
	s.screen.DrawBox(charRect(r), palette.Hex(c))
}

func (s *boardSurface) Blit(src image.Rectangle, dst image.Point) {
	if s.atlas == nil {
		return
	}
	column, sub, quad := autotile.Decompose(src.Min)
	fill, edge := s.columnColors(column)

	if src.Dx() >= core.CellSize {
		s.fill(charRect(image.Rectangle{Min: dst, Max: dst.Add(src.Size())}), fill)
		return
	}

	st := core.Style{FG: edge, BG: fill}
	x, y := toCols(dst.X), toRows(dst.Y)
	for i, g := range quadrantGlyphs(sub, quad) {
		s.screen.SetCell(x+i, y, core.Cell{Rune: g, Style: st})
	}
}

// columnColors samples the middle and the left edge of a tile column.
func (s *boardSurface) columnColors(column int) (fill, edge string) {
	if c, ok := s.cols[column]; ok {
		return c[0], c[1]
	}
	base := autotile.TileBase(column)
	mid := core.TileSize / 2
	fill = hexAt(s.atlas, base.X+mid, base.Y+mid)
	edge = hexAt(s.atlas, base.X+1, base.Y+mid)
	s.cols[column] = [2]string{fill, edge}
	return fill, edge
}

func hexAt(img image.Image, x, y int) string {
	c, _ := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return palette.Hex(c)
}

// quadrantGlyphs returns the two characters of one quadrant. A quadrant shows
// the borders of its sub-tile that touch the quadrant's own corner.
func quadrantGlyphs(sub int, q image.Point) [2]rune {
	row, col := sub/3, sub%3
	top := row == 0 && q.Y == 0
	bottom := row == 2 && q.Y == 1
	left := col == 0 && q.X == 0
	right := col == 2 && q.X == 1

	g := [2]rune{' ', ' '}
	if top || bottom {
		g = [2]rune{'─', '─'}
	}
	switch {
	case left:
		g[0] = cornerOr('│', top, bottom, '╭', '╰')
	case right:
		g[1] = cornerOr('│', top, bottom, '╮', '╯')
	}
	return g
}

func cornerOr(side rune, top, bottom bool, topCorner, bottomCorner rune) rune {
	switch {
	case top:
		return topCorner
	case bottom:
		return bottomCorner
	}
	return side
}

func toCols(px int) int { return px * cellCols / core.CellSize }
func toRows(py int) int { return py * cellRows / core.CellSize }

func charRect(r image.Rectangle) core.Rect {
	x0, y0 := toCols(r.Min.X), toRows(r.Min.Y)
	return core.NewRect(x0, y0, toCols(r.Max.X)-x0, toRows(r.Max.Y)-y0)
}
