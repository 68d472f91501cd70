// Package engine defines the capability interface to the puzzle rule engine
// and the typed per-game facade the presentation layer talks to.
//
// The rule engine owns board storage, legality, piece merging and undo
// history. Nothing in this package computes any of that: every facade method
// forwards to the bound Engine.
package engine

import "github.com/vovakirdan/slidelink/internal/core"

// Handle identifies one game instance inside an Engine.
type Handle int

// CellRef is an opaque cell identifier returned by Engine.Cell. It is only
// valid until the next mutating command (move or undo); re-fetch afterwards.
type CellRef int

// Engine is the fixed call table of the rule engine. Implementations adapt
// whatever boundary the engine lives behind; the presentation layer receives
// one as an injected dependency.
type Engine interface {
	// New creates a game instance and returns its handle.
	New() Handle
	// Free releases a game instance.
	Free(h Handle)

	// Undo reverts the last accepted move. Returns false when nothing can be undone.
	Undo(h Handle) bool
	// MovePiece moves the piece at (x, y) one cell in dir. Returns whether
	// the move was accepted; a rejected move leaves the board unchanged.
	MovePiece(h Handle, x, y int, dir core.Dir) bool

	// Cell returns the reference of the cell at (x, y). The result outside
	// the board is defined but unspecified; callers validate bounds first.
	Cell(h Handle, x, y int) CellRef

	MoveCount(h Handle) int
	ActionCount(h Handle) int
	UndoAvailable(h Handle) int

	CellType(h Handle, ref CellRef) core.CellKind
	Color(h Handle, ref CellRef) int
	// WhereCanConnect returns the directions the piece is able to connect
	// in, independent of its neighbors. core.ConnNone for non-pieces.
	WhereCanConnect(h Handle, ref CellRef) core.ConnMask
	// WhereConnected returns the directions the cell currently joins with.
	WhereConnected(h Handle, ref CellRef) core.ConnMask

	Block(h Handle, ref CellRef) int
	BlockIsFixed(h Handle, ref CellRef) bool
	CellCoords(h Handle, ref CellRef) (x, y int)
	BlockCount(h Handle) int
}
