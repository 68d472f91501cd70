package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/slidelink/internal/core"
)

// KeyMap defines the key bindings of the board screen.
type KeyMap struct {
	Undo     key.Binding
	Restart  key.Binding
	Next     key.Binding
	Prev     key.Binding
	Deselect key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Restart, k.Next, k.Prev, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Undo, k.Restart, k.Deselect},
		{k.Next, k.Prev, k.Copy},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Undo: key.NewBinding(
			key.WithKeys("u", "z"),
			key.WithHelp("u/z", "undo"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n/]", "next level"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "["),
			key.WithHelp("p/[", "prev level"),
		),
		Deselect: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "deselect"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy board"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a session action.
// The help toggle is not an action and maps to ActionNone.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Undo):
		return core.ActionUndo
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Next):
		return core.ActionNextLevel
	case key.Matches(msg, k.Prev):
		return core.ActionPrevLevel
	case key.Matches(msg, k.Deselect):
		return core.ActionDeselect
	case key.Matches(msg, k.Copy):
		return core.ActionCopy
	}
	return core.ActionNone
}
