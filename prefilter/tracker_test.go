package prefilter

import "testing"

func TestTracker_NilInnerReturnsNil(t *testing.T) {
	if NewTracker(nil) != nil {
		t.Error("expected nil tracker for nil inner prefilter")
	}
	if WrapWithTracking(nil) != nil {
		t.Error("expected nil from WrapWithTracking(nil)")
	}
}

func TestTracker_PassesThroughFind(t *testing.T) {
	pf := NewBuilder(seqOf("x"), nil).Build()
	tr := NewTracker(pf)
	pos := tr.Find([]byte("abcxdef"), 0)
	if pos != 3 {
		t.Errorf("Find = %d, want 3", pos)
	}
	cand, conf, _, active := tr.Stats()
	if cand != 1 || conf != 0 || !active {
		t.Errorf("Stats = %d,%d,_,%v, want 1,0,_,true", cand, conf, active)
	}
}

func TestTracker_ConfirmMatchUpdatesEfficiency(t *testing.T) {
	pf := NewBuilder(seqOf("x"), nil).Build()
	tr := NewTracker(pf)
	tr.Find([]byte("x"), 0)
	tr.ConfirmMatch()
	_, _, eff, _ := tr.Stats()
	if eff != 1.0 {
		t.Errorf("efficiency = %f, want 1.0", eff)
	}
}

func TestTracker_DisablesBelowMinEfficiencyAfterWarmup(t *testing.T) {
	pf := NewBuilder(seqOf("x"), nil).Build()
	cfg := TrackerConfig{CheckInterval: 10, MinEfficiency: 0.5, WarmupPeriod: 10}
	tr := NewTrackerWithConfig(pf, cfg)

	haystack := []byte("xxxxxxxxxxxxxxxxxxxx")
	pos := 0
	for i := 0; i < 10; i++ {
		p := tr.Find(haystack, pos)
		if p < 0 {
			t.Fatalf("expected a candidate at iteration %d", i)
		}
		pos = p + 1
		// Never confirm: efficiency stays at 0, which is below the 0.5
		// threshold once the warmup period and check interval are met.
	}
	if tr.IsActive() {
		t.Error("expected tracker to disable itself after sustained zero efficiency")
	}
	if tr.Find(haystack, 0) != -1 {
		t.Error("expected Find to return -1 once disabled")
	}
}

func TestTracker_StaysActiveDuringWarmup(t *testing.T) {
	pf := NewBuilder(seqOf("x"), nil).Build()
	cfg := TrackerConfig{CheckInterval: 1, MinEfficiency: 0.9, WarmupPeriod: 100}
	tr := NewTrackerWithConfig(pf, cfg)
	tr.Find([]byte("x"), 0)
	if !tr.IsActive() {
		t.Error("expected tracker to remain active during warmup regardless of efficiency")
	}
}

func TestTracker_Reset(t *testing.T) {
	pf := NewBuilder(seqOf("x"), nil).Build()
	cfg := TrackerConfig{CheckInterval: 1, MinEfficiency: 0.9, WarmupPeriod: 1}
	tr := NewTrackerWithConfig(pf, cfg)
	tr.Find([]byte("x"), 0)
	if tr.IsActive() {
		t.Fatal("expected the tracker to have disabled itself before Reset")
	}
	tr.Reset()
	if !tr.IsActive() {
		t.Error("expected Reset to re-enable the tracker")
	}
	cand, conf, _, _ := tr.Stats()
	if cand != 0 || conf != 0 {
		t.Errorf("Stats after Reset = %d,%d, want 0,0", cand, conf)
	}
}

func TestWrapWithTracking_ImplementsPrefilter(t *testing.T) {
	pf := NewBuilder(seqOf("hello"), nil).Build()
	wrapped := WrapWithTracking(pf)
	var _ Prefilter = wrapped
	pos := wrapped.Find([]byte("say hello"), 0)
	if pos != 4 {
		t.Errorf("Find = %d, want 4", pos)
	}
	if wrapped.IsComplete() != pf.IsComplete() {
		t.Error("IsComplete should delegate to the inner prefilter")
	}
}
