// Package transport turns the firmware's line protocol into structured
// sensor frames and button edges. One line is either a comma-separated list
// of raw readings ("512,1023,88") or a button token ("START", "BUZZER").
//
// Opening and managing the serial device is not handled here; the pump
// reads any io.Reader, typically the opened device file.
package transport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/laser-maze/internal/engine"
)

// LineKind discriminates parsed lines.
type LineKind int

const (
	LineFrame LineKind = iota
	LineStart
	LineBuzzer
)

// Line is one parsed line of the protocol.
type Line struct {
	Kind  LineKind
	Frame engine.SensorFrame // set when Kind == LineFrame
}

// errBlank marks lines with no content; the pump skips them silently.
var errBlank = errors.New("transport: blank line")

// ParseLine interprets one line of the firmware protocol.
func ParseLine(s string) (Line, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Line{}, errBlank
	}

	switch strings.ToUpper(s) {
	case "START":
		return Line{Kind: LineStart}, nil
	case "BUZZER":
		return Line{Kind: LineBuzzer}, nil
	}

	parts := strings.Split(s, ",")
	frame := make(engine.SensorFrame, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Line{}, fmt.Errorf("transport: bad reading %q: %w", p, err)
		}
		frame = append(frame, v)
	}
	return Line{Kind: LineFrame, Frame: frame}, nil
}
