package transport

import (
	"bufio"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/laser-maze/internal/engine"
)

// Handler receives parsed transport events. The engine implements it.
type Handler interface {
	HandleFrame(frame engine.SensorFrame)
	PressStart()
	PressBuzzer()
}

// Pump reads the line protocol from a reader on its own goroutine and
// dispatches into a single handler. The subscription is created once at
// construction and released once by Close; the pump never re-subscribes.
type Pump struct {
	r       io.Reader
	h       Handler
	logger  *log.Logger
	done    chan struct{}
	doneO   sync.Once
	stopped chan struct{}
}

// NewPump creates a pump. It does not start reading until Start.
func NewPump(r io.Reader, h Handler, logger *log.Logger) *Pump {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pump{
		r:       r,
		h:       h,
		logger:  logger,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins reading in a background goroutine.
func (p *Pump) Start() {
	go p.run()
}

// Run reads until the reader is exhausted or Close is called. A transport
// interruption simply stops delivering frames; the session is unaffected.
func (p *Pump) Run() {
	p.run()
}

func (p *Pump) run() {
	defer close(p.stopped)

	scanner := bufio.NewScanner(p.r)
	for scanner.Scan() {
		select {
		case <-p.done:
			return
		default:
		}

		line, err := ParseLine(scanner.Text())
		if err != nil {
			if err != errBlank {
				p.logger.Debug("dropped malformed line", "error", err)
			}
			continue
		}

		switch line.Kind {
		case LineFrame:
			p.h.HandleFrame(line.Frame)
		case LineStart:
			p.h.PressStart()
		case LineBuzzer:
			p.h.PressBuzzer()
		}
	}

	if err := scanner.Err(); err != nil {
		p.logger.Warn("transport read error", "error", err)
	}
}

// Close stops the pump. If the reader blocks, the caller must also close
// the underlying device to unblock the scanner.
func (p *Pump) Close() {
	p.doneO.Do(func() {
		close(p.done)
	})
}

// Stopped returns a channel that closes when the read loop exits.
func (p *Pump) Stopped() <-chan struct{} {
	return p.stopped
}
