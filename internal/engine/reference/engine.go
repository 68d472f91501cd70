// Package reference is a pure Go puzzle engine behind the engine capability
// interface.
//
// Pieces join with a neighbor when both have a connection bit facing each
// other and either their colors match or one of them is a connector (a piece
// that cannot connect in all four directions). Joined pieces form a block.
// A horizontal move shifts a whole block one cell; afterwards every block
// without a fixed piece falls until it rests on something.
package reference

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/engine"
	"github.com/vovakirdan/slidelink/internal/levels"
)

type game struct {
	cur     board
	history []board
	moves   int
	actions int
}

// Engine runs games of one level.
type Engine struct {
	level  levels.Level
	games  map[engine.Handle]*game
	next   engine.Handle
	logger *log.Logger
}

// New returns an engine whose games start from lvl.
func New(lvl levels.Level, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		level:  lvl,
		games:  make(map[engine.Handle]*game),
		logger: logger,
	}
}

func (e *Engine) New() engine.Handle {
	e.next++
	g := &game{}
	g.cur.cells = e.level.Cells
	g.cur.relabel()
	g.cur.settle()
	e.games[e.next] = g
	return e.next
}

func (e *Engine) Free(h engine.Handle) {
	delete(e.games, h)
}

func (e *Engine) get(h engine.Handle) *game {
	g, ok := e.games[h]
	if !ok {
		e.logger.Warn("unknown game handle", "handle", h)
		return &game{}
	}
	return g
}

func (e *Engine) Undo(h engine.Handle) bool {
	g := e.get(h)
	if len(g.history) == 0 {
		return false
	}
	g.cur = g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.actions++
	return true
}

func (e *Engine) MovePiece(h engine.Handle, x, y int, dir core.Dir) bool {
	g := e.get(h)
	if !core.InBoard(x, y) || !dir.Horizontal() {
		return false
	}
	if g.cur.cells[y][x].Kind != core.CellPiece {
		return false
	}
	id := g.cur.blocks[y][x]
	if g.cur.blockFixed(id) {
		return false
	}
	dx, _ := dir.Delta()
	if !g.cur.canShift(id, dx, 0) {
		return false
	}

	g.history = append(g.history, g.cur)
	g.cur.shift(id, dx, 0)
	g.cur.relabel()
	g.cur.settle()
	g.moves++
	g.actions++
	return true
}

// Cell returns -1 off the board.
func (e *Engine) Cell(_ engine.Handle, x, y int) engine.CellRef {
	if !core.InBoard(x, y) {
		return -1
	}
	return engine.CellRef(core.C(x, y).Index())
}

func (e *Engine) MoveCount(h engine.Handle) int     { return e.get(h).moves }
func (e *Engine) ActionCount(h engine.Handle) int   { return e.get(h).actions }
func (e *Engine) UndoAvailable(h engine.Handle) int { return len(e.get(h).history) }

func (e *Engine) coord(ref engine.CellRef) (core.Coord, bool) {
	if ref < 0 || int(ref) >= core.BoardW*core.BoardH {
		return core.Coord{}, false
	}
	return core.CoordOf(int(ref)), true
}

func (e *Engine) CellType(h engine.Handle, ref engine.CellRef) core.CellKind {
	c, ok := e.coord(ref)
	if !ok {
		return core.CellEmpty
	}
	return e.get(h).cur.cells[c.Y][c.X].Kind
}

func (e *Engine) Color(h engine.Handle, ref engine.CellRef) int {
	c, ok := e.coord(ref)
	if !ok {
		return 0
	}
	return e.get(h).cur.cells[c.Y][c.X].Color
}

func (e *Engine) WhereCanConnect(h engine.Handle, ref engine.CellRef) core.ConnMask {
	c, ok := e.coord(ref)
	if !ok {
		return core.ConnNone
	}
	cell := e.get(h).cur.cells[c.Y][c.X]
	if cell.Kind != core.CellPiece {
		return core.ConnNone
	}
	return cell.Connect
}

func (e *Engine) WhereConnected(h engine.Handle, ref engine.CellRef) core.ConnMask {
	c, ok := e.coord(ref)
	if !ok {
		return core.ConnNone
	}
	g := e.get(h)
	return g.cur.connected(c.X, c.Y)
}

func (e *Engine) Block(h engine.Handle, ref engine.CellRef) int {
	c, ok := e.coord(ref)
	if !ok {
		return -1
	}
	return e.get(h).cur.blocks[c.Y][c.X]
}

func (e *Engine) BlockIsFixed(h engine.Handle, ref engine.CellRef) bool {
	c, ok := e.coord(ref)
	if !ok {
		return false
	}
	g := e.get(h)
	cell := g.cur.cells[c.Y][c.X]
	if cell.Kind.IsStatic() {
		return true
	}
	id := g.cur.blocks[c.Y][c.X]
	return id >= 0 && g.cur.blockFixed(id)
}

func (e *Engine) CellCoords(_ engine.Handle, ref engine.CellRef) (int, int) {
	c, ok := e.coord(ref)
	if !ok {
		return -1, -1
	}
	return c.X, c.Y
}

func (e *Engine) BlockCount(h engine.Handle) int {
	return e.get(h).cur.blockCount
}

// Level returns the level the engine plays.
func (e *Engine) Level() levels.Level { return e.level }

var _ engine.Engine = (*Engine)(nil)
