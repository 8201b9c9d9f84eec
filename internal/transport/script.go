package transport

import (
	"time"

	"github.com/charmbracelet/log"
)

// Step is one scripted line, delivered After the previous step.
type Step struct {
	After time.Duration
	Line  string
}

// Script is a canned sequence of protocol lines for the simulator.
type Script []Step

// Run plays the script into the handler. wait is called between steps; the
// simulator passes either time.Sleep or a manual clock's Advance.
func (s Script) Run(h Handler, wait func(time.Duration), logger *log.Logger) {
	for _, step := range s {
		if step.After > 0 {
			wait(step.After)
		}
		line, err := ParseLine(step.Line)
		if err != nil {
			if err != errBlank && logger != nil {
				logger.Debug("dropped malformed script line", "line", step.Line, "error", err)
			}
			continue
		}
		switch line.Kind {
		case LineFrame:
			h.HandleFrame(line.Frame)
		case LineStart:
			h.PressStart()
		case LineBuzzer:
			h.PressBuzzer()
		}
	}
}

// DemoScript returns a short scripted run against the default four-beam
// layout: start, two touches, then the buzzer.
func DemoScript() Script {
	idle := "900,900,900,900"
	return Script{
		{After: 0, Line: "START"},
		{After: 0, Line: idle},
		{After: 3 * time.Second, Line: idle},
		{After: 2 * time.Second, Line: "120,900,900,900"}, // beam-1 broken
		{After: 100 * time.Millisecond, Line: "120,900,900,900"},
		{After: 2 * time.Second, Line: idle},
		{After: 1500 * time.Millisecond, Line: "900,900,80,900"}, // beam-3 broken
		{After: 2 * time.Second, Line: idle},
		{After: 1 * time.Second, Line: "BUZZER"},
	}
}
