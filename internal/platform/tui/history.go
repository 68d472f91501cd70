package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/slidelink/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show level list sidebar
	sidebarWidth       = 24  // Width of level list sidebar
	maxSessions        = 100 // Max sessions to load per level
)

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists recorded sessions per level.
type HistoryModel struct {
	levels      []string
	cursor      int
	store       *storage.Store
	sessions    []storage.SessionRecord
	stats       *storage.LevelStats
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history view over the given level ids.
func NewHistoryModel(store *storage.Store, levelIDs []string, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		levels:      levelIDs,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.levels) > 0 {
		m.load(m.levels[0])
	}
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Moves", Width: 6},
		{Title: "Actions", Width: 8},
		{Title: "Blocks", Width: 7},
		{Title: "Time", Width: 7},
		{Title: "Origin", Width: 12},
		{Title: "Date", Width: 13},
	}

	height := m.height - 10 // Leave room for header, stats, help, and margins
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the sessions and stats of one level.
func (m *HistoryModel) load(levelID string) {
	m.sessions, m.stats, m.err = nil, nil, nil
	if m.store != nil {
		m.sessions, m.err = m.store.RecentSessions(levelID, maxSessions)
		if m.err == nil {
			m.stats, m.err = m.store.GetLevelStats(levelID)
		}
	}
	m.table.SetRows(historyRows(m.sessions))
	m.table.GotoTop()
}

func historyRows(sessions []storage.SessionRecord) []table.Row {
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Moves),
			fmt.Sprintf("%d", s.Actions),
			fmt.Sprintf("%d", s.BlockCount),
			formatDuration(s.Duration),
			s.Origin,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel):
			m.step(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(historyRows(m.sessions))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *HistoryModel) step(offset int) {
	if len(m.levels) == 0 {
		return
	}
	n := len(m.levels)
	m.cursor = ((m.cursor+offset)%n + n) % n
	m.load(m.levels[m.cursor])
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "HISTORY"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("HISTORY - %s", m.levels[m.cursor])
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.statsLine())
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", panel))
	} else {
		b.WriteString(panel)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) statsLine() string {
	switch {
	case m.store == nil:
		return "no history database"
	case m.err != nil:
		return "error: " + m.err.Error()
	case m.stats == nil || m.stats.Sessions == 0:
		return ""
	}
	best := "-"
	if m.stats.BestMoves > 0 {
		best = fmt.Sprintf("%d", m.stats.BestMoves)
	}
	return fmt.Sprintf("sessions %d  best %s moves  last played %s",
		m.stats.Sessions, best, m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderSidebar renders the level list.
func (m HistoryModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := id
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay this level to start its history!")
	}
	return m.table.View()
}

// RunHistory runs the history view.
func RunHistory(store *storage.Store, levelIDs []string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, levelIDs, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
