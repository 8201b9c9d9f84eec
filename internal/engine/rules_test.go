package engine

import "testing"

func TestTriggerRulesBreachExactlyOnce(t *testing.T) {
	var r triggerRules
	r.reset(3)

	for i := 1; i <= 2; i++ {
		count, breach := r.record()
		if count != i {
			t.Fatalf("count = %d, want %d", count, i)
		}
		if breach {
			t.Fatalf("breach on trigger %d, limit is 3", i)
		}
	}

	count, breach := r.record()
	if count != 3 || !breach {
		t.Fatalf("third trigger: count=%d breach=%v, want 3 and true", count, breach)
	}

	// Triggers past the limit keep counting but never breach again.
	count, breach = r.record()
	if count != 4 || breach {
		t.Errorf("fourth trigger: count=%d breach=%v, want 4 and false", count, breach)
	}
}

func TestTriggerRulesUnlimited(t *testing.T) {
	var r triggerRules
	r.reset(0)

	for i := 0; i < 100; i++ {
		if _, breach := r.record(); breach {
			t.Fatalf("breach with no touch limit, on trigger %d", i+1)
		}
	}
}

func TestTriggerRulesResetClearsBreach(t *testing.T) {
	var r triggerRules
	r.reset(1)
	if _, breach := r.record(); !breach {
		t.Fatal("no breach at limit 1")
	}

	r.reset(1)
	if r.count != 0 {
		t.Errorf("count after reset = %d, want 0", r.count)
	}
	if _, breach := r.record(); !breach {
		t.Error("no breach after reset")
	}
}
