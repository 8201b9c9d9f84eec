// Package tui provides the Bubble Tea live monitor for the laser maze and
// an SSH server for watching the maze remotely.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/laser-maze/internal/engine"
)

// engineEventMsg wraps an engine event for Bubble Tea.
type engineEventMsg struct {
	evt engine.Event
}

// sinkClosedMsg signals that the engine's event sink was closed.
type sinkClosedMsg struct{}

// waitForEvent returns a command that blocks for the next engine event.
func waitForEvent(sink *engine.ChannelSink) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-sink.Events():
			return engineEventMsg{evt: evt}
		case <-sink.Done():
			return sinkClosedMsg{}
		}
	}
}

// Monitor is the Bubble Tea model showing the live maze state.
type Monitor struct {
	eng  *engine.Engine
	sink *engine.ChannelSink
	keys *KeyMapper

	// readOnly disables the start/buzzer/reset keys and the commit prompt.
	// Remote SSH viewers are read-only.
	readOnly bool

	// cancel releases the broadcaster subscription for remote viewers.
	cancel func()

	snap          engine.Snapshot
	countdownStep int // -1 when no countdown is showing
	finished      *engine.FinishedEvent

	bar       progress.Model
	nameInput textinput.Model
	naming    bool
	committed bool
	commitErr error

	width    int
	quitting bool
}

// NewMonitor creates a monitor for the given engine. The sink must be the
// one the engine (or a broadcaster subscription) sends events to.
func NewMonitor(eng *engine.Engine, sink *engine.ChannelSink, readOnly bool) Monitor {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 24

	ti := textinput.New()
	ti.Placeholder = "player name"
	ti.CharLimit = 32

	return Monitor{
		eng:           eng,
		sink:          sink,
		keys:          NewKeyMapper(),
		readOnly:      readOnly,
		snap:          eng.Snapshot(),
		countdownStep: -1,
		bar:           bar,
		nameInput:     ti,
		width:         80,
	}
}

// SetCancel registers a cleanup function invoked when the monitor quits.
func (m *Monitor) SetCancel(cancel func()) {
	m.cancel = cancel
}

// Init starts listening for engine events.
func (m Monitor) Init() tea.Cmd {
	return waitForEvent(m.sink)
}

// Update handles messages and updates the model state.
func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case engineEventMsg:
		return m.handleEvent(msg.evt)

	case sinkClosedMsg:
		return m.quit()
	}

	return m, nil
}

func (m Monitor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While naming, keys belong to the text input.
	if m.naming {
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			m.naming = false
			return m, nil
		case "enter":
			name := m.nameInput.Value()
			if _, err := m.eng.CommitRun(name); err != nil {
				m.commitErr = err
				return m, nil
			}
			m.commitErr = nil
			m.committed = true
			m.naming = false
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch m.keys.MapKey(msg) {
	case ActionQuit:
		return m.quit()
	case ActionStart:
		if !m.readOnly {
			m.eng.Start()
		}
	case ActionBuzzer:
		if !m.readOnly {
			m.eng.Stop()
		}
	case ActionReset:
		if !m.readOnly {
			m.eng.Reset()
		}
	}

	// Offer the commit prompt again from the finished screen.
	if !m.readOnly && msg.String() == "n" && m.finished != nil && !m.committed {
		m.naming = true
		m.nameInput.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m Monitor) handleEvent(evt engine.Event) (tea.Model, tea.Cmd) {
	switch evt := evt.(type) {
	case engine.CountdownEvent:
		m.countdownStep = evt.Step

	case engine.SessionEvent:
		if evt.State != engine.StateCountingDown {
			m.countdownStep = -1
		}
		if evt.State != engine.StateFinished {
			m.finished = nil
			m.naming = false
			m.committed = false
			m.commitErr = nil
			m.nameInput.SetValue("")
		}

	case engine.FinishedEvent:
		finished := evt
		m.finished = &finished
		if !m.readOnly {
			m.naming = true
			m.nameInput.Focus()
			m.snap = m.eng.Snapshot()
			return m, tea.Batch(waitForEvent(m.sink), textinput.Blink)
		}
	}

	m.snap = m.eng.Snapshot()
	return m, waitForEvent(m.sink)
}

func (m Monitor) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

// View renders the monitor.
func (m Monitor) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("LASER MAZE"))
	b.WriteString("  ")
	b.WriteString(sessionStyles[m.snap.State].Render(strings.ToUpper(m.snap.State.String())))
	b.WriteString("\n\n")

	if m.countdownStep >= 0 {
		label := fmt.Sprintf("%d", m.countdownStep)
		if m.countdownStep == 0 {
			label = "GO!"
		}
		b.WriteString(countdownStyle.Render("  " + label))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("time "))
	b.WriteString(formatElapsed(m.snap.ElapsedMs))
	b.WriteString("   ")
	b.WriteString(labelStyle.Render("touches "))
	if m.snap.MaxTouches > 0 {
		b.WriteString(fmt.Sprintf("%d/%d", m.snap.TriggeredCount, m.snap.MaxTouches))
	} else {
		b.WriteString(fmt.Sprintf("%d", m.snap.TriggeredCount))
	}
	b.WriteString("\n\n")

	for _, beam := range m.snap.Beams {
		b.WriteString(m.renderBeam(beam))
		b.WriteString("\n")
	}

	if m.finished != nil {
		b.WriteString("\n")
		b.WriteString(m.renderFinished())
	}

	b.WriteString("\n")
	if m.readOnly {
		b.WriteString(helpStyle.Render("read-only monitor · q quit"))
	} else {
		b.WriteString(helpStyle.Render("s start · b buzzer · r reset · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Monitor) renderBeam(beam engine.BeamSnapshot) string {
	style := beamStyles[beam.State]

	marker := "●"
	if beam.State == engine.BeamBlinking && !beam.BlinkOn {
		marker = "○"
	}
	if beam.State == engine.BeamDisabled {
		marker = "·"
	}

	line := fmt.Sprintf("  %s %-16s %-12s", style.Render(marker), beam.Name, style.Render(beam.State.String()))
	if beam.State == engine.BeamReactivating {
		line += " " + m.bar.ViewAs(beam.Progress/100)
	}
	return line
}

func (m Monitor) renderFinished() string {
	var b strings.Builder

	rec := m.finished.Record
	if m.finished.Outcome == engine.OutcomeSuccess {
		b.WriteString(successStyle.Render("FINISHED"))
	} else {
		b.WriteString(failureStyle.Render("GAME OVER"))
	}
	b.WriteString(fmt.Sprintf("  %s, %d touches\n", formatElapsed(rec.ElapsedMs), rec.TriggeredCount))

	switch {
	case m.committed:
		b.WriteString(helpStyle.Render("run saved · s to start again"))
		b.WriteString("\n")
	case m.naming:
		b.WriteString("save run as: ")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
		if m.commitErr != nil {
			b.WriteString(errorStyle.Render(m.commitErr.Error()))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("enter save · esc skip"))
		b.WriteString("\n")
	case !m.readOnly:
		b.WriteString(helpStyle.Render("n name & save this run · s start again"))
		b.WriteString("\n")
	}

	return b.String()
}

func formatElapsed(ms int64) string {
	tenths := (ms / 100) % 10
	secs := ms / 1000
	return fmt.Sprintf("%02d:%02d.%d", secs/60, secs%60, tenths)
}

// Run starts the interactive monitor and blocks until it quits.
func Run(eng *engine.Engine, sink *engine.ChannelSink) error {
	m := NewMonitor(eng, sink, false)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
