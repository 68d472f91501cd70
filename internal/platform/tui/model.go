package tui

import (
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/play"
)

// The board is drawn below a one-line title, inside a one-character border.
const (
	boardLeft = 1
	boardTop  = 2
)

// Model is the Bubble Tea model for one board session.
type Model struct {
	env      play.Env
	config   core.RuntimeConfig
	origin   string
	renderer *lipgloss.Renderer
	surface  *boardSurface
	session  *play.Session
	keys     KeyMap
	help     help.Model
	started  time.Time

	status    string
	statusSeq int
	quitting  bool
}

// NewModel opens cfg.LevelID on cfg.Engine. origin names the front-end in
// session history ("term" or "ssh:<user>").
func NewModel(env play.Env, cfg core.RuntimeConfig, origin string, renderer *lipgloss.Renderer) (Model, error) {
	if env.Logger == nil {
		env.Logger = log.Default()
	}
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}

	// Palettes log unknown colors once, so each session owns one.
	pal, err := play.NewPalette(env.Palette, cfg.Seed, env.Logger)
	if err != nil {
		return Model{}, err
	}
	eng, levelID, err := play.OpenLevel(env.Levels, cfg.Engine, cfg.LevelID, env.Logger)
	if err != nil {
		return Model{}, err
	}
	cfg.LevelID = levelID

	bg, _ := pal.ColumnColor(pal.BackgroundColumn())
	surface := newBoardSurface(bg)
	session := play.New(eng, pal, surface, play.Options{LevelID: levelID, Render: env.Render}, env.Logger)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		env:      env,
		config:   cfg,
		origin:   origin,
		renderer: renderer,
		surface:  surface,
		session:  session,
		keys:     DefaultKeyMap(),
		help:     h,
		started:  time.Now(),
	}, nil
}

// Init starts the background atlas load. The board is playable in flat mode
// until it arrives.
func (m Model) Init() tea.Cmd {
	return loadAtlasCmd(m.env.AtlasPath, m.session.Palette(), m.env.Logger)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.session.Click(msg.X, msg.Y, BoardView())
		}
		return m, nil

	case atlasMsg:
		if msg.Err != nil || msg.Image == nil {
			m.env.Logger.Warn("atlas load failed, staying in flat mode", "err", msg.Err)
			return m, nil
		}
		m.surface.SetAtlas(msg.Image)
		m.session.AtlasLoaded()
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionUndo:
		if !m.session.Undo() {
			return m.setStatus("nothing to undo")
		}
	case core.ActionRestart:
		m.record()
		m.session.Restart()
		m.started = time.Now()
	case core.ActionNextLevel:
		return m.switchLevel(1)
	case core.ActionPrevLevel:
		return m.switchLevel(-1)
	case core.ActionDeselect:
		m.session.Deselect()
	case core.ActionCopy:
		return m.copyBoard()
	}
	return m, nil
}

func (m Model) switchLevel(offset int) (tea.Model, tea.Cmd) {
	id, err := play.StepLevel(m.env.Levels, m.session.LevelID(), offset)
	if err != nil {
		return m.setStatus(err.Error())
	}
	eng, id, err := play.OpenLevel(m.env.Levels, m.config.Engine, id, m.env.Logger)
	if err != nil {
		return m.setStatus(err.Error())
	}
	m.record()
	m.session.Reopen(eng, id)
	m.config.LevelID = id
	m.started = time.Now()
	return m, nil
}

func (m Model) copyBoard() (tea.Model, tea.Cmd) {
	if m.env.Copy == nil {
		return m.setStatus("clipboard unavailable")
	}
	if err := m.env.Copy(m.session.Dump()); err != nil {
		m.env.Logger.Warn("copy failed", "err", err)
		return m.setStatus("copy failed")
	}
	return m.setStatus("board copied")
}

func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	return m, clearStatusCmd(m.statusSeq)
}

// record saves the current game to history.
func (m Model) record() {
	m.env.Record(m.session, m.config.Engine, m.origin, m.started)
}

func (m Model) finish() {
	m.record()
	m.session.Close()
}

// View renders the board with its HUD.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardStyle := m.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	dimStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("SLIDELINK  "+m.session.LevelID()),
		boardStyle.Render(RenderScreen(m.renderer, m.surface.screen)),
		hudLine(m.session.Stats()),
		dimStyle.Render(m.status),
		dimStyle.Render(m.help.View(m.keys)),
	)
}

func hudLine(st core.Stats) string {
	mode := "flat"
	if st.AtlasLoaded {
		mode = "tiled"
	}
	return fmt.Sprintf("moves %d  actions %d  undo %d  blocks %d  [%s]",
		st.Moves, st.Actions, st.UndoAvail, st.BlockCount, mode)
}

// BoardView is the terminal rectangle the board occupies in View.
func BoardView() image.Rectangle {
	return image.Rect(boardLeft, boardTop, boardLeft+BoardCols, boardTop+BoardRows)
}

// Run starts the Bubble Tea program on the local terminal.
func Run(env play.Env, cfg core.RuntimeConfig) error {
	model, err := NewModel(env, cfg, "term", nil)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
