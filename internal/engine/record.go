package engine

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNoFinishedRun is returned by Commit when no run is awaiting commit.
	ErrNoFinishedRun = errors.New("engine: no finished run to commit")

	// ErrEmptyPlayerName is returned by Commit for a blank player name.
	ErrEmptyPlayerName = errors.New("engine: player name must not be empty")

	// ErrAlreadyCommitted is returned by Commit when the current run's
	// record was already persisted.
	ErrAlreadyCommitted = errors.New("engine: run already committed")
)

// RunRecord is the immutable summary of one completed session, including a
// snapshot of the settings the session ran under.
type RunRecord struct {
	PlayerName          string
	ElapsedMs           int64
	TriggeredCount      int
	MaxTouches          int
	ReactivateEnabled   bool
	ReactivationSeconds float64
	Outcome             Outcome
	RecordedAt          time.Time
}

// RunSink persists committed run records. Append-only from the engine's
// point of view; it never reads records back.
type RunSink interface {
	SaveRun(rec RunRecord) error
}

// recorder holds the record candidate for the most recently finished run.
type recorder struct {
	sink      RunSink
	pending   *RunRecord
	committed bool
}

// capture stages a new candidate, replacing any uncommitted one.
func (r *recorder) capture(rec RunRecord) {
	r.pending = &rec
	r.committed = false
}

// discard drops the candidate, committed or not.
func (r *recorder) discard() {
	r.pending = nil
	r.committed = false
}

// commit attaches the player name and hands the record to the sink.
// A rejected commit leaves the candidate untouched so the caller may retry.
func (r *recorder) commit(name string) (RunRecord, error) {
	if r.pending == nil {
		return RunRecord{}, ErrNoFinishedRun
	}
	if r.committed {
		return RunRecord{}, ErrAlreadyCommitted
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return RunRecord{}, ErrEmptyPlayerName
	}

	rec := *r.pending
	rec.PlayerName = name
	if r.sink != nil {
		if err := r.sink.SaveRun(rec); err != nil {
			return RunRecord{}, err
		}
	}
	*r.pending = rec
	r.committed = true
	return rec, nil
}
