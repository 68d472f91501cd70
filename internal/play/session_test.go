package play

import (
	"image"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/engine/enginetest"
	"github.com/vovakirdan/slidelink/internal/palette"
	"github.com/vovakirdan/slidelink/internal/render"
)

func newSession(t *testing.T, accept bool) (*Session, *enginetest.Fake, *render.Recorder) {
	t.Helper()
	f := enginetest.NewFake()
	f.SetPiece(3, 2, 2, core.ConnAll, core.ConnEmpty)
	f.SetWall(0, 9)
	f.Accept = accept

	logger := log.New(io.Discard)
	pal, err := palette.New(palette.Config{}, nil, logger)
	if err != nil {
		t.Fatalf("palette.New failed: %v", err)
	}
	rec := &render.Recorder{}
	s := New(f, pal, rec, Options{LevelID: "test"}, logger)
	t.Cleanup(s.Close)
	return s, f, rec
}

var boardView = image.Rect(0, 0, core.BoardPixelsW, core.BoardPixelsH)

func center(x, y int) (int, int) {
	return x*core.CellSize + core.CellSize/2, y*core.CellSize + core.CellSize/2
}

func TestNewDrawsFirstFrame(t *testing.T) {
	s, _, rec := newSession(t, true)
	if s.Redraws() != 1 {
		t.Errorf("Redraws = %d, expected 1", s.Redraws())
	}
	if rec.Count(render.OpFill) != 2 {
		t.Errorf("fills = %d, expected 2 in fallback mode", rec.Count(render.OpFill))
	}
}

func TestClickRedrawsOncePerTransition(t *testing.T) {
	s, f, _ := newSession(t, true)

	px, py := center(3, 2)
	s.Click(px, py, boardView)
	if s.Redraws() != 2 {
		t.Fatalf("after select Redraws = %d, expected 2", s.Redraws())
	}

	s.Click(px, py, boardView)
	if s.Redraws() != 2 {
		t.Errorf("same-cell click redrew: Redraws = %d", s.Redraws())
	}

	px, py = center(1, 2)
	out := s.Click(px, py, boardView)
	if !out.Moved || s.Redraws() != 3 {
		t.Errorf("move: outcome %+v, Redraws = %d", out, s.Redraws())
	}
	if len(f.Moves) != 1 || f.Moves[0].Dir != core.DirLeft {
		t.Errorf("engine moves = %v", f.Moves)
	}
}

func TestClickOffBoardIsGuarded(t *testing.T) {
	s, f, _ := newSession(t, true)
	s.Click(-10, 5, boardView)
	s.Click(core.BoardPixelsW+5, 5, boardView)
	if f.OutOfBounds != 0 {
		t.Errorf("engine saw %d out-of-bounds cell queries", f.OutOfBounds)
	}
	if s.Redraws() != 1 {
		t.Errorf("idle off-board clicks redrew: Redraws = %d", s.Redraws())
	}
}

func TestAtlasLoadedIsOneShot(t *testing.T) {
	s, _, rec := newSession(t, true)

	if !s.AtlasLoaded() {
		t.Fatal("first AtlasLoaded should switch modes")
	}
	if s.Redraws() != 2 {
		t.Errorf("Redraws = %d, expected 2", s.Redraws())
	}
	if rec.Count(render.OpBlit) == 0 {
		t.Error("no blits after atlas load")
	}
	if s.AtlasLoaded() {
		t.Error("second AtlasLoaded should be ignored")
	}
	if s.Redraws() != 2 {
		t.Errorf("second AtlasLoaded redrew: Redraws = %d", s.Redraws())
	}
	if !s.Stats().AtlasLoaded {
		t.Error("Stats should report the atlas as loaded")
	}
}

func TestAtlasStateSurvivesRestart(t *testing.T) {
	s, _, rec := newSession(t, true)
	s.AtlasLoaded()
	s.Restart()
	if rec.Count(render.OpBlit) == 0 {
		t.Error("restart fell back to flat rendering")
	}
}

func TestUndoClearsSelection(t *testing.T) {
	s, _, _ := newSession(t, true)
	px, py := center(3, 2)
	s.Click(px, py, boardView)
	lx, ly := center(5, 2)
	s.Click(lx, ly, boardView)

	s.Click(px, py, boardView)
	if s.Selection() == nil {
		t.Fatal("expected a selection")
	}
	if !s.Undo() {
		t.Error("Undo should succeed after an accepted move")
	}
	if s.Selection() != nil {
		t.Error("Undo should clear the selection")
	}
	if st := s.Stats(); st.Moves != 1 || st.UndoAvail != 0 || st.Actions != 2 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestRestartFreesHandle(t *testing.T) {
	s, f, _ := newSession(t, true)
	s.Restart()
	if f.Freed != 1 {
		t.Errorf("Freed = %d, expected 1", f.Freed)
	}
	if s.LevelID() != "test" {
		t.Errorf("LevelID = %q", s.LevelID())
	}
}

func TestDump(t *testing.T) {
	s, f, _ := newSession(t, true)
	f.SetPiece(4, 2, 1, core.ConnLeft, core.ConnLeft)
	f.SetEmerge(13, 0)
	px, py := center(3, 2)
	s.Click(px, py, boardView)

	lines := strings.Split(strings.TrimSuffix(s.Dump(), "\n"), "\n")
	if len(lines) != core.BoardH+1 {
		t.Fatalf("dump has %d lines, expected %d", len(lines), core.BoardH+1)
	}
	if lines[0] != ".............E" {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[2] != "...2*........." {
		t.Errorf("row 2 = %q", lines[2])
	}
	if lines[9][0] != '#' {
		t.Errorf("row 9 = %q", lines[9])
	}
	if lines[core.BoardH] != "sel (3,2)" {
		t.Errorf("selection line = %q", lines[core.BoardH])
	}
}
