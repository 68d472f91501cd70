// Package enginetest provides a scriptable in-memory Engine for tests of the
// presentation layer. Cells are set directly; nothing is computed.
package enginetest

import (
	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/engine"
)

// FakeCell is the engine-visible state of one cell.
type FakeCell struct {
	Kind       core.CellKind
	Color      int
	CanConnect core.ConnMask
	Connected  core.ConnMask
	Block      int
	Fixed      bool
}

// Move records one MovePiece call.
type Move struct {
	X, Y int
	Dir  core.Dir
}

// Fake is an Engine whose board is set by the test.
type Fake struct {
	Cells [core.BoardH][core.BoardW]FakeCell

	// Accept is returned by MovePiece. The board is never changed.
	Accept bool
	// Moves records every MovePiece call in order.
	Moves []Move
	// OutOfBounds counts Cell queries outside the board.
	OutOfBounds int
	// Freed counts Free calls.
	Freed int

	accepted int
	undos    int
	actions  int
	handles  int
}

// NewFake returns a Fake with an empty board.
func NewFake() *Fake {
	f := &Fake{}
	for y := range f.Cells {
		for x := range f.Cells[y] {
			f.Cells[y][x] = FakeCell{Kind: core.CellEmpty, CanConnect: core.ConnNone}
		}
	}
	return f
}

// SetPiece places a piece.
func (f *Fake) SetPiece(x, y, color int, canConnect, connected core.ConnMask) {
	f.Cells[y][x] = FakeCell{Kind: core.CellPiece, Color: color, CanConnect: canConnect, Connected: connected}
}

// SetWall places a wall.
func (f *Fake) SetWall(x, y int) {
	f.Cells[y][x] = FakeCell{Kind: core.CellWall, CanConnect: core.ConnNone, Fixed: true}
}

// SetEmerge places an emerge cell.
func (f *Fake) SetEmerge(x, y int) {
	f.Cells[y][x] = FakeCell{Kind: core.CellEmerge, CanConnect: core.ConnNone, Fixed: true}
}

func (f *Fake) cell(ref engine.CellRef) FakeCell {
	if ref < 0 || int(ref) >= core.BoardW*core.BoardH {
		return FakeCell{Kind: core.CellEmpty, CanConnect: core.ConnNone}
	}
	c := core.CoordOf(int(ref))
	return f.Cells[c.Y][c.X]
}

func (f *Fake) New() engine.Handle {
	f.handles++
	return engine.Handle(f.handles)
}

func (f *Fake) Free(engine.Handle) { f.Freed++ }

func (f *Fake) Undo(engine.Handle) bool {
	if f.undos == 0 {
		return false
	}
	f.undos--
	f.actions++
	return true
}

func (f *Fake) MovePiece(_ engine.Handle, x, y int, dir core.Dir) bool {
	f.Moves = append(f.Moves, Move{X: x, Y: y, Dir: dir})
	if f.Accept {
		f.accepted++
		f.undos++
		f.actions++
	}
	return f.Accept
}

func (f *Fake) Cell(_ engine.Handle, x, y int) engine.CellRef {
	if !core.InBoard(x, y) {
		f.OutOfBounds++
		return -1
	}
	return engine.CellRef(core.C(x, y).Index())
}

func (f *Fake) MoveCount(engine.Handle) int { return f.accepted }
func (f *Fake) ActionCount(engine.Handle) int { return f.actions }
func (f *Fake) UndoAvailable(engine.Handle) int { return f.undos }

func (f *Fake) CellType(_ engine.Handle, ref engine.CellRef) core.CellKind {
	return f.cell(ref).Kind
}

func (f *Fake) Color(_ engine.Handle, ref engine.CellRef) int {
	return f.cell(ref).Color
}

func (f *Fake) WhereCanConnect(_ engine.Handle, ref engine.CellRef) core.ConnMask {
	return f.cell(ref).CanConnect
}

func (f *Fake) WhereConnected(_ engine.Handle, ref engine.CellRef) core.ConnMask {
	return f.cell(ref).Connected
}

func (f *Fake) Block(_ engine.Handle, ref engine.CellRef) int {
	return f.cell(ref).Block
}

func (f *Fake) BlockIsFixed(_ engine.Handle, ref engine.CellRef) bool {
	return f.cell(ref).Fixed
}

func (f *Fake) CellCoords(_ engine.Handle, ref engine.CellRef) (int, int) {
	c := core.CoordOf(int(ref))
	return c.X, c.Y
}

func (f *Fake) BlockCount(engine.Handle) int {
	seen := make(map[int]bool)
	for y := range f.Cells {
		for x := range f.Cells[y] {
			if f.Cells[y][x].Kind == core.CellPiece {
				seen[f.Cells[y][x].Block] = true
			}
		}
	}
	return len(seen)
}

var _ engine.Engine = (*Fake)(nil)
