package core

// Action represents a semantic session action, abstracted from physical key
// presses. Pointer clicks are not actions; they go through the selection
// state machine.
type Action int

const (
	ActionNone      Action = iota
	ActionUndo             // U, Z - undo the last move
	ActionRestart          // R - reload the current level
	ActionNextLevel        // N, ] - open the next level
	ActionPrevLevel        // P, [ - open the previous level
	ActionDeselect         // Esc - clear the selection
	ActionCopy             // C - copy the board dump
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUndo:
		return "Undo"
	case ActionRestart:
		return "Restart"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionDeselect:
		return "Deselect"
	case ActionCopy:
		return "Copy"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
