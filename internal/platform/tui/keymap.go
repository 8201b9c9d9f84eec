package tui

import tea "github.com/charmbracelet/bubbletea"

// Action is a monitor-level action derived from input.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionBuzzer
	ActionReset
	ActionQuit
)

// KeyMapper translates Bubble Tea key messages to monitor actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a monitor action. The keyboard mirrors
// the physical buttons so the maze can be driven without the hardware.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return ActionQuit
	case "s", " ":
		return ActionStart
	case "b", "enter":
		return ActionBuzzer
	case "r":
		return ActionReset
	}
	return ActionNone
}
