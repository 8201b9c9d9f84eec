package engine

import "sync"

// SessionState is the lifecycle state of the session controller.
type SessionState int

const (
	StateIdle SessionState = iota
	StateCountingDown
	StateRunning
	StateFinished
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountingDown:
		return "counting-down"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is how a finished run ended.
type Outcome int

const (
	// OutcomeSuccess: the runner pressed the buzzer (or stop was called).
	OutcomeSuccess Outcome = iota
	// OutcomeFailure: the touch limit was breached.
	OutcomeFailure
)

func (o Outcome) String() string {
	if o == OutcomeFailure {
		return "failure"
	}
	return "success"
}

// ParseOutcome converts a stored outcome string back to an Outcome.
func ParseOutcome(s string) Outcome {
	if s == "failure" {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// Event is anything the engine reports to the presentation layer.
type Event interface{ event() }

// SessionEvent reports a session state transition.
type SessionEvent struct {
	State SessionState
}

// CountdownEvent reports a countdown step. Step counts down 3, 2, 1;
// step 0 is GO.
type CountdownEvent struct {
	Step int
}

// BeamEvent reports one beam's current state.
type BeamEvent struct {
	ID       string
	State    BeamState
	BlinkOn  bool
	Progress float64 // reactivation progress, 0-100
}

// ElapsedEvent reports the run clock, advancing in fixed ticks while running.
type ElapsedEvent struct {
	ElapsedMs int64
}

// TriggerEvent reports the cumulative accepted trigger count.
type TriggerEvent struct {
	Count int
}

// FinishedEvent reports the final outcome together with the run record
// candidate awaiting commit.
type FinishedEvent struct {
	Outcome Outcome
	Record  RunRecord
}

func (SessionEvent) event()   {}
func (CountdownEvent) event() {}
func (BeamEvent) event()      {}
func (ElapsedEvent) event()   {}
func (TriggerEvent) event()   {}
func (FinishedEvent) event()  {}

// Sink receives engine events. The engine holds exactly one sink for its
// whole lifetime; fan-out to multiple consumers goes through a Broadcaster.
type Sink interface {
	Send(evt Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Send(evt Event) { f(evt) }

// ChannelSink is a Sink backed by a buffered channel.
// Used by the TUI layer to bridge engine events into Bubble Tea.
type ChannelSink struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSink creates a channel-based sink.
// bufferSize controls how many events can be buffered before dropping.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSink{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send delivers an event without blocking.
// If the buffer is full, the oldest event is dropped.
func (s *ChannelSink) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Done returns a channel that closes when the sink is closed.
func (s *ChannelSink) Done() <-chan struct{} {
	return s.done
}

// Close marks the sink as done. Safe to call multiple times.
func (s *ChannelSink) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Broadcaster fans engine events out to any number of subscribers.
// Thread-safe for concurrent access.
type Broadcaster struct {
	mu    sync.RWMutex
	next  int
	sinks map[int]Sink
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{sinks: make(map[int]Sink)}
}

// Subscribe registers a sink and returns a function that removes it.
func (b *Broadcaster) Subscribe(s Sink) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.sinks[id] = s
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.sinks, id)
		b.mu.Unlock()
	}
}

// Send forwards the event to every subscriber.
func (b *Broadcaster) Send(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.sinks {
		s.Send(evt)
	}
}

// Count returns the number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sinks)
}
