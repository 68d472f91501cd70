// Package autotile computes, for each occupied board cell, which quadrant
// sized fragments of the texture atlas to draw so that adjacent pieces with
// the same tile identity read as one continuous shape.
//
// Atlas layout: column c occupies x in [c*TileSize, (c+1)*TileSize). Each
// column is a 3x3 grid of CellSize sub-tiles, a 9-slice of the piece border:
//
//	0 1 2    0,2,6,8 closed corners
//	3 4 5    1,7 top/bottom edge, 3,5 left/right edge
//	6 7 8    4 interior, open on every side
//
// A cell is drawn as four CellSize/2 quadrants, each sampled from the matching
// quadrant of its selected sub-tile.
package autotile

import (
	"image"

	"github.com/vovakirdan/slidelink/internal/core"
)

// Half is the quadrant edge length.
const Half = core.CellSize / 2

// NoTile is the identity of cells that never join with anything (Empty).
const NoTile = -1

// Sub-tile indices of the 9-slice grid.
const (
	SubTopLeft     = 0
	SubTop         = 1
	SubTopRight    = 2
	SubLeft        = 3
	SubInterior    = 4
	SubRight       = 5
	SubBottomLeft  = 6
	SubBottom      = 7
	SubBottomRight = 8
)

// ColumnResolver is the part of the palette the compositor needs.
type ColumnResolver interface {
	ResolveAtlasColumn(colorIndex int) int
	BackgroundColumn() int
	WallColumn() int
}

// Identity returns the tile identity (atlas column) of a cell. It depends only
// on the cell kind, color and black-piece flag, so it is safe to cache for a
// whole redraw.
func Identity(kind core.CellKind, colorIndex int, black bool, pal ColumnResolver) int {
	switch {
	case kind == core.CellEmpty:
		return NoTile
	case kind.IsStatic():
		return pal.WallColumn()
	case black:
		return pal.BackgroundColumn()
	default:
		return pal.ResolveAtlasColumn(colorIndex)
	}
}

// TileBase returns the atlas origin of a column.
func TileBase(column int) image.Point {
	return image.Pt(column*core.TileSize, 0)
}

// Cache holds the tile identity of every board cell for one redraw.
type Cache struct {
	ids [core.BoardH][core.BoardW]int
}

// NewCache returns a cache with every cell set to NoTile.
func NewCache() *Cache {
	c := &Cache{}
	for y := range c.ids {
		for x := range c.ids[y] {
			c.ids[y][x] = NoTile
		}
	}
	return c
}

// Set stores the identity of (x, y).
func (c *Cache) Set(x, y, id int) {
	c.ids[y][x] = id
}

// At returns the identity of (x, y), or NoTile off the board.
func (c *Cache) At(x, y int) int {
	if !core.InBoard(x, y) {
		return NoTile
	}
	return c.ids[y][x]
}

// Origin returns the atlas origin of (x, y) and whether the cell has a tile.
func (c *Cache) Origin(x, y int) (image.Point, bool) {
	id := c.At(x, y)
	if id == NoTile {
		return image.Point{}, false
	}
	return TileBase(id), true
}

// Matches reports whether the cell at (x, y) joins its neighbor in dir: the
// neighbor is on the board and both have the same, real, tile identity.
func (c *Cache) Matches(x, y int, dir core.Dir) bool {
	dx, dy := dir.Delta()
	nx, ny := x+dx, y+dy
	if !core.InBoard(nx, ny) {
		return false
	}
	id := c.At(x, y)
	return id != NoTile && id == c.At(nx, ny)
}

// Effective splits a cell's connectivity into the directions that render as an
// open seam and the decoration mask of directions that must be drawn closed.
func Effective(c *Cache, x, y int, connected core.ConnMask) (open, decoration core.ConnMask) {
	if connected < 0 {
		return core.ConnEmpty, core.ConnEmpty
	}
	for _, d := range core.Dirs {
		if !connected.Has(d) {
			continue
		}
		if !c.Matches(x, y, d) {
			decoration |= d.Bit()
		}
	}
	return connected ^ decoration, decoration
}

// Subtiles maps an effective mask to the sub-tile of each quadrant,
// indexed [row][col].
func Subtiles(open core.ConnMask) [2][2]int {
	var res [2][2]int
	var set [2][2]bool
	mark := func(i, j, single int) {
		if set[i][j] {
			res[i][j] = SubInterior
		} else {
			res[i][j] = single
			set[i][j] = true
		}
	}

	if open.Has(core.DirLeft) {
		mark(0, 0, SubTop)
		mark(1, 0, SubBottom)
	}
	if open.Has(core.DirRight) {
		mark(0, 1, SubTop)
		mark(1, 1, SubBottom)
	}
	if open.Has(core.DirUp) {
		mark(0, 0, SubLeft)
		mark(0, 1, SubRight)
	}
	if open.Has(core.DirDown) {
		mark(1, 0, SubLeft)
		mark(1, 1, SubRight)
	}

	corners := [2][2]int{
		{SubTopLeft, SubTopRight},
		{SubBottomLeft, SubBottomRight},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !set[i][j] {
				res[i][j] = corners[i][j]
			}
		}
	}
	return res
}

// AtlasOrigin converts a tile base, sub-tile index and quadrant (col, row
// within the sub-tile, each 0 or 1) into absolute atlas pixel coordinates.
func AtlasOrigin(base image.Point, subtile int, quadrant image.Point) image.Point {
	return image.Pt(
		base.X+(subtile%3)*core.CellSize+quadrant.X*Half,
		base.Y+(subtile/3)*core.CellSize+quadrant.Y*Half,
	)
}

// Blit is one copy instruction: the Src rectangle of the atlas is drawn with
// its top-left corner at Dst in board pixel space.
type Blit struct {
	Src image.Rectangle
	Dst image.Point
}

// Compose returns the four quadrant blits for the piece at (x, y), in
// row-major quadrant order. ok is false for cells without a tile.
func Compose(c *Cache, x, y int, connected core.ConnMask) (blits [4]Blit, ok bool) {
	base, ok := c.Origin(x, y)
	if !ok {
		return blits, false
	}
	open, _ := Effective(c, x, y, connected)
	subs := Subtiles(open)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			q := image.Pt(j, i)
			src := AtlasOrigin(base, subs[i][j], q)
			blits[i*2+j] = Blit{
				Src: image.Rect(src.X, src.Y, src.X+Half, src.Y+Half),
				Dst: image.Pt(x*core.CellSize+j*Half, y*core.CellSize+i*Half),
			}
		}
	}
	return blits, true
}

// Static returns the single full-cell blit used for wall and emerge cells:
// the interior sub-tile of the cell's column.
func Static(c *Cache, x, y int) (Blit, bool) {
	base, ok := c.Origin(x, y)
	if !ok {
		return Blit{}, false
	}
	src := AtlasOrigin(base, SubInterior, image.Point{})
	return Blit{
		Src: image.Rect(src.X, src.Y, src.X+core.CellSize, src.Y+core.CellSize),
		Dst: image.Pt(x*core.CellSize, y*core.CellSize),
	}, true
}

// Decompose inverts AtlasOrigin for a quadrant-sized source rectangle:
// it returns the atlas column, sub-tile index and quadrant the rectangle was
// sampled from. Surfaces that cannot sample pixels use it to pick glyphs.
func Decompose(src image.Point) (column, subtile int, quadrant image.Point) {
	column = src.X / core.TileSize
	inX := src.X % core.TileSize
	inY := src.Y % core.TileSize
	subtile = (inY/core.CellSize)*3 + inX/core.CellSize
	quadrant = image.Pt((inX%core.CellSize)/Half, (inY%core.CellSize)/Half)
	return column, subtile, quadrant
}
