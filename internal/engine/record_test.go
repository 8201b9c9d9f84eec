package engine

import (
	"errors"
	"testing"
	"time"
)

// memorySink collects saved records, optionally failing.
type memorySink struct {
	saved []RunRecord
	err   error
}

func (s *memorySink) SaveRun(rec RunRecord) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, rec)
	return nil
}

func TestRecorderCommitOncePerRun(t *testing.T) {
	sink := &memorySink{}
	r := recorder{sink: sink}

	r.capture(RunRecord{ElapsedMs: 4200, TriggeredCount: 2, RecordedAt: time.Now()})

	rec, err := r.commit("zoe")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if rec.PlayerName != "zoe" || rec.ElapsedMs != 4200 {
		t.Errorf("committed record = %+v", rec)
	}
	if len(sink.saved) != 1 {
		t.Fatalf("sink received %d records, want 1", len(sink.saved))
	}

	if _, err := r.commit("zoe"); err != ErrAlreadyCommitted {
		t.Errorf("second commit: err = %v, want ErrAlreadyCommitted", err)
	}
	if len(sink.saved) != 1 {
		t.Errorf("second commit reached the sink")
	}
}

func TestRecorderRejectsBlankNamesWithoutSaving(t *testing.T) {
	sink := &memorySink{}
	r := recorder{sink: sink}
	r.capture(RunRecord{ElapsedMs: 100})

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := r.commit(name); err != ErrEmptyPlayerName {
			t.Errorf("commit(%q): err = %v, want ErrEmptyPlayerName", name, err)
		}
	}
	if len(sink.saved) != 0 {
		t.Fatalf("blank name reached the sink")
	}

	// The candidate survives rejected commits and can still be saved.
	if _, err := r.commit("max"); err != nil {
		t.Fatalf("commit after rejections: %v", err)
	}
}

func TestRecorderSinkFailureLeavesRunCommittable(t *testing.T) {
	sinkErr := errors.New("disk full")
	sink := &memorySink{err: sinkErr}
	r := recorder{sink: sink}
	r.capture(RunRecord{ElapsedMs: 100})

	if _, err := r.commit("max"); !errors.Is(err, sinkErr) {
		t.Fatalf("commit: err = %v, want the sink error", err)
	}

	// Retry succeeds once the sink recovers.
	sink.err = nil
	if _, err := r.commit("max"); err != nil {
		t.Fatalf("retry commit: %v", err)
	}
}

func TestRecorderDiscard(t *testing.T) {
	r := recorder{}
	r.capture(RunRecord{ElapsedMs: 100})
	r.discard()

	if _, err := r.commit("max"); err != ErrNoFinishedRun {
		t.Errorf("commit after discard: err = %v, want ErrNoFinishedRun", err)
	}
}
