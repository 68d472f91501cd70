// Package input turns board clicks into selection changes and move commands.
//
// The machine has two states, Idle and Selected(x, y). A click on a piece in
// Idle selects it. In Selected, a click in the same column but another row
// cancels; a click on the selected cell does nothing; any other click issues a
// horizontal move towards the clicked column and returns to Idle whether or
// not the engine accepted the move.
package input

import (
	"image"

	"github.com/vovakirdan/slidelink/internal/core"
)

// Board is what the machine needs from the game.
type Board interface {
	KindAt(x, y int) core.CellKind
	Move(x, y int, dir core.Dir) bool
}

// Outcome describes what a click did.
type Outcome struct {
	// Redraw is set when the selection changed or a command was issued.
	Redraw bool
	// Moved is set when a move was sent to the engine.
	Moved bool
	// Move is the command that was sent, valid when Moved.
	Move Command
	// Accepted is the engine's answer to Move.
	Accepted bool
}

// Command is a move request.
type Command struct {
	From core.Coord
	Dir  core.Dir
}

// Machine is the selection state machine. The zero value is Idle.
type Machine struct {
	selected bool
	sel      core.Coord
}

// Selection returns the selected cell, or nil in Idle.
func (m *Machine) Selection() *core.Coord {
	if !m.selected {
		return nil
	}
	c := m.sel
	return &c
}

// Idle reports whether nothing is selected.
func (m *Machine) Idle() bool { return !m.selected }

// Reset returns to Idle and reports whether a selection was cleared.
func (m *Machine) Reset() bool {
	was := m.selected
	m.selected = false
	return was
}

// Click handles a click already resolved to a board cell. ok is false when the
// pointer was outside the board; such clicks never reach the engine.
func (m *Machine) Click(b Board, cx, cy int, ok bool) Outcome {
	if !ok || !core.InBoard(cx, cy) {
		if m.selected {
			m.selected = false
			return Outcome{Redraw: true}
		}
		return Outcome{}
	}

	if !m.selected {
		if b.KindAt(cx, cy) != core.CellPiece {
			return Outcome{}
		}
		m.selected = true
		m.sel = core.C(cx, cy)
		return Outcome{Redraw: true}
	}

	sx, sy := m.sel.X, m.sel.Y
	if cx == sx {
		if cy == sy {
			return Outcome{}
		}
		m.selected = false
		return Outcome{Redraw: true}
	}

	dir := core.DirRight
	if cx < sx {
		dir = core.DirLeft
	}
	m.selected = false
	accepted := b.Move(sx, sy, dir)
	return Outcome{
		Redraw:   true,
		Moved:    true,
		Move:     Command{From: core.C(sx, sy), Dir: dir},
		Accepted: accepted,
	}
}

// PointerToCell maps a pointer position in screen space to a board cell. view
// is the on-screen rectangle the board is drawn into; the position is
// normalized against it and scaled into board pixel space before dividing by
// the cell size. ok is false when the result lies outside the board.
func PointerToCell(px, py int, view image.Rectangle) (cx, cy int, ok bool) {
	if view.Empty() {
		return 0, 0, false
	}
	bx := float64(px-view.Min.X) / float64(view.Dx()) * core.BoardPixelsW
	by := float64(py-view.Min.Y) / float64(view.Dy()) * core.BoardPixelsH
	cx = floorDiv(bx, core.CellSize)
	cy = floorDiv(by, core.CellSize)
	return cx, cy, core.InBoard(cx, cy)
}

func floorDiv(v float64, d int) int {
	q := v / float64(d)
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
