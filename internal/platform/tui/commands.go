// Package tui runs the board in a terminal with Bubble Tea, locally or over
// SSH. It handles the terminal UI loop, key and mouse mapping and the
// session history view.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/atlas"
)

// statusTimeout is how long a status line stays visible.
const statusTimeout = 3 * time.Second

// atlasMsg delivers the result of the background atlas load.
type atlasMsg atlas.Result

// statusClearMsg clears the status line if it still shows message seq.
type statusClearMsg struct{ seq int }

// loadAtlasCmd starts loading the atlas and returns a command that waits for
// the result.
func loadAtlasCmd(path string, colors atlas.Colors, logger *log.Logger) tea.Cmd {
	ch := atlas.LoadAsync(path, colors, logger)
	return func() tea.Msg {
		return atlasMsg(<-ch)
	}
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
