package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/atlas"
	"github.com/vovakirdan/slidelink/internal/core"
	_ "github.com/vovakirdan/slidelink/internal/engine/reference"
	"github.com/vovakirdan/slidelink/internal/levels"
	"github.com/vovakirdan/slidelink/internal/play"
	"github.com/vovakirdan/slidelink/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	env := play.Env{
		Levels: levels.Builtin(),
		Store:  store,
		Logger: log.New(io.Discard),
	}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m, err := NewModel(env, cfg, "term", nil)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

// update feeds msg to m and returns the resulting Model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// clickCell sends a left click on the middle of a board cell.
func clickCell(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	m, _ = update(t, m, tea.MouseMsg{
		X:      boardLeft + x*cellCols + cellCols/2,
		Y:      boardTop + y*cellRows,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	return m
}

func TestModelOpensFirstLevel(t *testing.T) {
	m := newTestModel(t, nil)
	if id := m.session.LevelID(); id != "01-first-steps" {
		t.Errorf("LevelID = %q", id)
	}
	if !strings.Contains(m.View(), "[flat]") {
		t.Error("expected flat mode before the atlas arrives")
	}
}

func TestModelClickMovesPiece(t *testing.T) {
	m := newTestModel(t, nil)

	m = clickCell(t, m, 10, 8)
	if sel := m.session.Selection(); sel == nil || *sel != core.C(10, 8) {
		t.Fatalf("selection = %v, expected (10,8)", sel)
	}
	m = clickCell(t, m, 9, 8)
	if m.session.Selection() != nil {
		t.Error("selection not cleared after move")
	}
	if st := m.session.Stats(); st.Moves != 1 {
		t.Errorf("Moves = %d, expected 1", st.Moves)
	}
}

func TestModelIgnoresOtherMouseEvents(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.MouseMsg{
		X:      boardLeft + 10*cellCols,
		Y:      boardTop + 8*cellRows,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
	if m.session.Selection() != nil {
		t.Error("release selected a cell")
	}
}

func TestModelUndoStatus(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := update(t, m, runes("u"))
	if m.status != "nothing to undo" || cmd == nil {
		t.Errorf("status = %q, cmd = %v", m.status, cmd)
	}

	m, _ = update(t, m, statusClearMsg{seq: m.statusSeq - 1})
	if m.status == "" {
		t.Error("stale clear message removed the status")
	}
	m, _ = update(t, m, statusClearMsg{seq: m.statusSeq})
	if m.status != "" {
		t.Errorf("status = %q after clear", m.status)
	}
}

func TestModelSwitchesLevels(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, runes("n"))
	if id := m.session.LevelID(); id != "02-stacks" {
		t.Errorf("after next LevelID = %q", id)
	}
	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, runes("p"))
	if id := m.session.LevelID(); id != "03-connectors" {
		t.Errorf("after wrapping back LevelID = %q", id)
	}
}

func TestModelCopy(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, runes("c"))
	if m.status != "clipboard unavailable" {
		t.Errorf("status = %q", m.status)
	}

	var copied string
	m.env.Copy = func(s string) error {
		copied = s
		return nil
	}
	m, _ = update(t, m, runes("c"))
	if m.status != "board copied" || !strings.HasPrefix(copied, "##############\n") {
		t.Errorf("status = %q, copied = %q", m.status, copied)
	}
}

func TestModelAtlasSwitchesToTiled(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.session.Redraws()

	m, _ = update(t, m, atlasMsg{Image: atlas.Generate(m.session.Palette()), Generated: true})
	if !m.session.Stats().AtlasLoaded {
		t.Fatal("atlas not marked loaded")
	}
	if m.session.Redraws() != before+1 {
		t.Errorf("Redraws = %d, expected %d", m.session.Redraws(), before+1)
	}
	if !strings.Contains(m.surface.screen.String(), "╭") {
		t.Error("tiled board has no rounded corners")
	}
	if !strings.Contains(m.View(), "[tiled]") {
		t.Error("HUD does not show tiled mode")
	}
}

func TestModelQuitRecordsSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = clickCell(t, m, 10, 8)
	m = clickCell(t, m, 9, 8)

	m, cmd := update(t, m, runes("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("q did not quit")
	}

	recs, err := store.RecentSessions("01-first-steps", 10)
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d sessions, expected 1", len(recs))
	}
	if r := recs[0]; r.Moves != 1 || r.Origin != "term" || r.Engine != "reference" {
		t.Errorf("record = %+v", r)
	}
}

func TestModelSkipsEmptySessions(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	update(t, m, runes("q"))
	if recs, _ := store.RecentSessions("", 10); len(recs) != 0 {
		t.Errorf("got %d sessions for an untouched board", len(recs))
	}
}

func TestBoardViewMatchesView(t *testing.T) {
	m := newTestModel(t, nil)
	lines := strings.Split(m.View(), "\n")
	v := BoardView()
	if len(lines) < v.Max.Y+1 {
		t.Fatalf("view has %d lines", len(lines))
	}
	if !strings.Contains(lines[v.Min.Y-1], "╭") {
		t.Errorf("line above the board is %q, expected the top border", lines[v.Min.Y-1])
	}
}
