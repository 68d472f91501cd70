package engine

import "github.com/vovakirdan/slidelink/internal/core"

// Game binds an Engine to one game handle. It keeps no state besides the
// handle; every query goes to the engine.
type Game struct {
	eng    Engine
	handle Handle
}

// Open creates a new game instance on the engine.
func Open(e Engine) *Game {
	return &Game{eng: e, handle: e.New()}
}

// Close frees the game instance. The Game must not be used afterwards.
func (g *Game) Close() {
	g.eng.Free(g.handle)
}

// Cell returns the reference of the cell at (x, y).
func (g *Game) Cell(x, y int) CellRef {
	return g.eng.Cell(g.handle, x, y)
}

// Kind returns the cell kind.
func (g *Game) Kind(ref CellRef) core.CellKind {
	return g.eng.CellType(g.handle, ref)
}

// KindAt returns the kind of the cell at (x, y). The caller must keep (x, y)
// on the board.
func (g *Game) KindAt(x, y int) core.CellKind {
	return g.Kind(g.Cell(x, y))
}

// Color returns the logical color index of a piece.
func (g *Game) Color(ref CellRef) int {
	return g.eng.Color(g.handle, ref)
}

// CanConnect returns the piece's potential connection directions.
func (g *Game) CanConnect(ref CellRef) core.ConnMask {
	return g.eng.WhereCanConnect(g.handle, ref)
}

// Connected returns the directions the cell currently joins with.
func (g *Game) Connected(ref CellRef) core.ConnMask {
	return g.eng.WhereConnected(g.handle, ref)
}

// Block returns the block id of the cell.
func (g *Game) Block(ref CellRef) int {
	return g.eng.Block(g.handle, ref)
}

// BlockIsFixed reports whether the cell's block can never move.
func (g *Game) BlockIsFixed(ref CellRef) bool {
	return g.eng.BlockIsFixed(g.handle, ref)
}

// Coords returns the board position of a cell reference.
func (g *Game) Coords(ref CellRef) (x, y int) {
	return g.eng.CellCoords(g.handle, ref)
}

// Move asks the engine to move the piece at (x, y). Only Left and Right are
// supported; any other direction is rejected without reaching the engine.
func (g *Game) Move(x, y int, dir core.Dir) bool {
	if !dir.Horizontal() {
		return false
	}
	return g.eng.MovePiece(g.handle, x, y, dir)
}

// Undo reverts the last accepted move.
func (g *Game) Undo() bool {
	return g.eng.Undo(g.handle)
}

// MoveCount returns the number of accepted moves.
func (g *Game) MoveCount() int {
	return g.eng.MoveCount(g.handle)
}

// ActionCount returns the number of accepted moves and undos.
func (g *Game) ActionCount() int {
	return g.eng.ActionCount(g.handle)
}

// UndoAvailable returns how many moves can currently be undone.
func (g *Game) UndoAvailable() int {
	return g.eng.UndoAvailable(g.handle)
}

// BlockCount returns the number of blocks on the current board.
func (g *Game) BlockCount() int {
	return g.eng.BlockCount(g.handle)
}
