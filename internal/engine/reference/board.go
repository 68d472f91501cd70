package reference

import (
	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/levels/formats"
)

type cell = formats.Cell

// board is one game state. It is a value type so snapshots are plain copies.
type board struct {
	cells [core.BoardH][core.BoardW]cell
	// blocks holds the block id of every cell, -1 for non-pieces.
	blocks     [core.BoardH][core.BoardW]int
	blockCount int
}

func (b *board) at(x, y int) cell {
	if !core.InBoard(x, y) {
		return cell{Kind: core.CellEmpty, Connect: core.ConnNone}
	}
	return b.cells[y][x]
}

// joins reports whether the piece at (x, y) joins its neighbor in dir. Both
// cells must be pieces with facing connection bits. Colors must match unless
// either side is a connector (a piece that cannot connect in every direction).
func (b *board) joins(x, y int, dir core.Dir) bool {
	a := b.at(x, y)
	dx, dy := dir.Delta()
	n := b.at(x+dx, y+dy)
	if a.Kind != core.CellPiece || n.Kind != core.CellPiece {
		return false
	}
	if !a.Connect.Has(dir) || !n.Connect.Has(dir.Opposite()) {
		return false
	}
	if isConnector(a) || isConnector(n) {
		return true
	}
	return a.Color == n.Color
}

func isConnector(c cell) bool {
	return c.Connect != core.ConnAll
}

// connected returns the directions the cell currently joins with.
func (b *board) connected(x, y int) core.ConnMask {
	if b.at(x, y).Kind != core.CellPiece {
		return core.ConnNone
	}
	m := core.ConnEmpty
	for _, d := range core.Dirs {
		if b.joins(x, y, d) {
			m = m.With(d)
		}
	}
	return m
}

// relabel recomputes blocks as connected components of the join relation,
// numbered in row-major order of their first cell.
func (b *board) relabel() {
	for y := range b.blocks {
		for x := range b.blocks[y] {
			b.blocks[y][x] = -1
		}
	}
	next := 0
	var stack []core.Coord
	for y := 0; y < core.BoardH; y++ {
		for x := 0; x < core.BoardW; x++ {
			if b.cells[y][x].Kind != core.CellPiece || b.blocks[y][x] >= 0 {
				continue
			}
			b.blocks[y][x] = next
			stack = append(stack[:0], core.C(x, y))
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range core.Dirs {
					if !b.joins(c.X, c.Y, d) {
						continue
					}
					n := c.Step(d)
					if b.blocks[n.Y][n.X] < 0 {
						b.blocks[n.Y][n.X] = next
						stack = append(stack, n)
					}
				}
			}
			next++
		}
	}
	b.blockCount = next
}

func (b *board) members(id int) []core.Coord {
	var out []core.Coord
	for y := 0; y < core.BoardH; y++ {
		for x := 0; x < core.BoardW; x++ {
			if b.blocks[y][x] == id {
				out = append(out, core.C(x, y))
			}
		}
	}
	return out
}

func (b *board) blockFixed(id int) bool {
	for _, c := range b.members(id) {
		if b.cells[c.Y][c.X].Fixed {
			return true
		}
	}
	return false
}

// canShift reports whether every cell of the block can step by (dx, dy):
// the destination is on the board and empty or part of the same block.
func (b *board) canShift(id, dx, dy int) bool {
	members := b.members(id)
	if len(members) == 0 {
		return false
	}
	for _, c := range members {
		n := c.Add(dx, dy)
		if !n.InBoard() {
			return false
		}
		if b.blocks[n.Y][n.X] == id {
			continue
		}
		if b.cells[n.Y][n.X].Kind != core.CellEmpty {
			return false
		}
	}
	return true
}

func (b *board) shift(id, dx, dy int) {
	members := b.members(id)
	moved := make([]cell, len(members))
	for i, c := range members {
		moved[i] = b.cells[c.Y][c.X]
		b.cells[c.Y][c.X] = cell{Kind: core.CellEmpty, Connect: core.ConnNone}
	}
	for i, c := range members {
		n := c.Add(dx, dy)
		b.cells[n.Y][n.X] = moved[i]
	}
}

// settle drops unfixed blocks one row at a time until nothing can fall.
func (b *board) settle() {
	for {
		fell := false
		for id := 0; id < b.blockCount; id++ {
			if b.blockFixed(id) || !b.canShift(id, 0, 1) {
				continue
			}
			b.shift(id, 0, 1)
			b.relabel()
			fell = true
			break
		}
		if !fell {
			return
		}
	}
}
