// Package play wires the engine facade, palette, render pipeline and input
// state machine into one interactive session. All methods must be called
// from the same goroutine.
package play

import (
	"image"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/engine"
	"github.com/vovakirdan/slidelink/internal/input"
	"github.com/vovakirdan/slidelink/internal/palette"
	"github.com/vovakirdan/slidelink/internal/render"
)

// Options configure a session.
type Options struct {
	LevelID string
	Render  render.Options
}

// Session is one game on one surface.
type Session struct {
	eng     engine.Engine
	game    *engine.Game
	pal     *palette.Palette
	pipe    *render.Pipeline
	mach    input.Machine
	surface render.Surface
	logger  *log.Logger

	levelID     string
	atlasLoaded bool
	renderOpts  render.Options
}

// New opens a game on eng and draws the first frame in fallback mode.
func New(eng engine.Engine, pal *palette.Palette, surface render.Surface, opts Options, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		eng:        eng,
		pal:        pal,
		surface:    surface,
		logger:     logger,
		renderOpts: opts.Render,
	}
	s.open(eng, opts.LevelID)
	s.Redraw()
	return s
}

func (s *Session) open(eng engine.Engine, levelID string) {
	s.eng = eng
	s.levelID = levelID
	s.game = engine.Open(eng)
	s.pipe = render.New(s.game, s.pal, s.renderOpts, s.logger)
	s.pipe.SetAtlasLoaded(s.atlasLoaded)
	s.mach.Reset()
}

// Click handles a pointer click in screen space. view is the on-screen
// rectangle the board occupies.
func (s *Session) Click(px, py int, view image.Rectangle) input.Outcome {
	cx, cy, ok := input.PointerToCell(px, py, view)
	return s.ClickCell(cx, cy, ok)
}

// ClickCell handles a click already resolved to a cell.
func (s *Session) ClickCell(cx, cy int, ok bool) input.Outcome {
	out := s.mach.Click(s.game, cx, cy, ok)
	if out.Moved {
		s.logger.Debug("move", "from", out.Move.From, "dir", out.Move.Dir, "accepted", out.Accepted)
	}
	if out.Redraw {
		s.Redraw()
	}
	return out
}

// Undo reverts the last move and clears the selection.
func (s *Session) Undo() bool {
	cleared := s.mach.Reset()
	ok := s.game.Undo()
	if ok || cleared {
		s.Redraw()
	}
	return ok
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	if s.mach.Reset() {
		s.Redraw()
	}
}

// Restart starts the current level over on a fresh game handle.
func (s *Session) Restart() {
	s.Reopen(s.eng, s.levelID)
}

// Reopen replaces the game with a new one on eng, for example after switching
// levels.
func (s *Session) Reopen(eng engine.Engine, levelID string) {
	s.game.Close()
	s.open(eng, levelID)
	s.logger.Info("level opened", "level", levelID)
	s.Redraw()
}

// AtlasLoaded switches to textured rendering and redraws once. Later calls
// are ignored and return false.
func (s *Session) AtlasLoaded() bool {
	if s.atlasLoaded {
		return false
	}
	s.atlasLoaded = true
	s.pipe.SetAtlasLoaded(true)
	s.Redraw()
	return true
}

// Redraw draws the full board and the current selection.
func (s *Session) Redraw() {
	s.pipe.Redraw(s.surface, s.mach.Selection())
}

// Redraws returns how many frames were drawn since the current game opened.
func (s *Session) Redraws() int { return s.pipe.Redraws() }

// Selection returns the selected cell, or nil.
func (s *Session) Selection() *core.Coord { return s.mach.Selection() }

// Game exposes the facade for read-only queries by front-ends.
func (s *Session) Game() *engine.Game { return s.game }

// Palette returns the session palette.
func (s *Session) Palette() *palette.Palette { return s.pal }

// LevelID returns the id of the open level.
func (s *Session) LevelID() string { return s.levelID }

// Stats returns the engine counters.
func (s *Session) Stats() core.Stats {
	return core.Stats{
		Moves:       s.game.MoveCount(),
		Actions:     s.game.ActionCount(),
		UndoAvail:   s.game.UndoAvailable(),
		BlockCount:  s.game.BlockCount(),
		LevelID:     s.levelID,
		AtlasLoaded: s.atlasLoaded,
	}
}

// Close frees the game handle.
func (s *Session) Close() {
	s.game.Close()
}
