package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/laser-maze/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	rec := engine.RunRecord{
		PlayerName:          "alice",
		ElapsedMs:           42300,
		TriggeredCount:      2,
		MaxTouches:          3,
		ReactivateEnabled:   true,
		ReactivationSeconds: 5,
		Outcome:             engine.OutcomeSuccess,
		RecordedAt:          time.Now(),
	}
	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	entries, err := store.Runs(10)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	got := entries[0].Record()
	if got.PlayerName != rec.PlayerName {
		t.Errorf("player = %q, want %q", got.PlayerName, rec.PlayerName)
	}
	if got.ElapsedMs != rec.ElapsedMs {
		t.Errorf("elapsed = %d, want %d", got.ElapsedMs, rec.ElapsedMs)
	}
	if got.TriggeredCount != rec.TriggeredCount {
		t.Errorf("triggered = %d, want %d", got.TriggeredCount, rec.TriggeredCount)
	}
	if got.MaxTouches != rec.MaxTouches {
		t.Errorf("max touches = %d, want %d", got.MaxTouches, rec.MaxTouches)
	}
	if got.ReactivateEnabled != rec.ReactivateEnabled {
		t.Errorf("reactivate = %v, want %v", got.ReactivateEnabled, rec.ReactivateEnabled)
	}
	if got.ReactivationSeconds != rec.ReactivationSeconds {
		t.Errorf("reactivation seconds = %v, want %v", got.ReactivationSeconds, rec.ReactivationSeconds)
	}
	if got.Outcome != rec.Outcome {
		t.Errorf("outcome = %v, want %v", got.Outcome, rec.Outcome)
	}
}

func TestRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"first", "second", "third"} {
		if err := store.SaveRun(engine.RunRecord{PlayerName: name, Outcome: engine.OutcomeSuccess}); err != nil {
			t.Fatalf("SaveRun(%s): %v", name, err)
		}
	}

	entries, err := store.Runs(2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (limit)", len(entries))
	}
	if entries[0].PlayerName != "third" || entries[1].PlayerName != "second" {
		t.Errorf("order = [%s %s], want [third second]", entries[0].PlayerName, entries[1].PlayerName)
	}
}

func TestBestRunPrefersFewestTouchesThenTime(t *testing.T) {
	store := openTestStore(t)

	runs := []engine.RunRecord{
		{PlayerName: "slow-clean", ElapsedMs: 60000, TriggeredCount: 0, Outcome: engine.OutcomeSuccess},
		{PlayerName: "fast-clean", ElapsedMs: 30000, TriggeredCount: 0, Outcome: engine.OutcomeSuccess},
		{PlayerName: "fast-touched", ElapsedMs: 10000, TriggeredCount: 2, Outcome: engine.OutcomeSuccess},
		{PlayerName: "failed", ElapsedMs: 5000, TriggeredCount: 3, Outcome: engine.OutcomeFailure},
	}
	for _, r := range runs {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	best, err := store.BestRun()
	if err != nil {
		t.Fatalf("BestRun: %v", err)
	}
	if best == nil {
		t.Fatal("BestRun returned nil with successes stored")
	}
	if best.PlayerName != "fast-clean" {
		t.Errorf("best = %s, want fast-clean", best.PlayerName)
	}
}

func TestBestRunIgnoresFailures(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveRun(engine.RunRecord{PlayerName: "failed", Outcome: engine.OutcomeFailure}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	best, err := store.BestRun()
	if err != nil {
		t.Fatalf("BestRun: %v", err)
	}
	if best != nil {
		t.Errorf("BestRun = %+v, want nil with only failures stored", best)
	}
}

func TestDeleteAll(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.SaveRun(engine.RunRecord{PlayerName: "x", Outcome: engine.OutcomeSuccess}); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}
	if n, _ := store.Count(); n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}

	if err := store.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if n, _ := store.Count(); n != 0 {
		t.Errorf("count after wipe = %d, want 0", n)
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "runs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()
}
