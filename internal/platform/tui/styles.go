package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/laser-maze/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	sessionStyles = map[engine.SessionState]lipgloss.Style{
		engine.StateIdle:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		engine.StateCountingDown: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		engine.StateRunning:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		engine.StateFinished:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	}

	beamStyles = map[engine.BeamState]lipgloss.Style{
		engine.BeamArmed:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		engine.BeamBlinking:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		engine.BeamReactivating: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		engine.BeamDisabled:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
)
