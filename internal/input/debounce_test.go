package input

import (
	"testing"
	"time"
)

const testDebounce = 30 * time.Millisecond

func TestNewDebouncerStartsHigh(t *testing.T) {
	d := NewDebouncer(testDebounce)
	if d.Stable() != LevelHigh {
		t.Errorf("initial stable level: got %s, want HIGH", d.Stable())
	}
}

func TestNoEdgeBeforeInterval(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(testDebounce)

	if edge := d.Observe(LevelLow, now); edge != EdgeNone {
		t.Errorf("first low sample: got %s, want no edge", edge)
	}
	if edge := d.Observe(LevelLow, now.Add(29*time.Millisecond)); edge != EdgeNone {
		t.Errorf("at 29ms: got %s, want no edge", edge)
	}
	if d.Stable() != LevelHigh {
		t.Errorf("stable flipped early: got %s", d.Stable())
	}
}

func TestPressedEdgeAtExactInterval(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(testDebounce)

	d.Observe(LevelLow, now)
	edge := d.Observe(LevelLow, now.Add(30*time.Millisecond))
	if edge != EdgePressed {
		t.Fatalf("at exactly 30ms: got %s, want PRESSED", edge)
	}
	if d.Stable() != LevelLow {
		t.Errorf("stable after press: got %s, want LOW", d.Stable())
	}
}

func TestReleasedEdge(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(testDebounce)

	d.Observe(LevelLow, now)
	d.Observe(LevelLow, now.Add(30*time.Millisecond))

	t2 := now.Add(500 * time.Millisecond)
	if edge := d.Observe(LevelHigh, t2); edge != EdgeNone {
		t.Errorf("release start: got %s, want no edge", edge)
	}
	edge := d.Observe(LevelHigh, t2.Add(30*time.Millisecond))
	if edge != EdgeReleased {
		t.Errorf("release settle: got %s, want RELEASED", edge)
	}
}

func TestBounceShorterThanIntervalEmitsNothing(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(testDebounce)

	// Rapid jitter, every change well under the interval.
	levels := []Level{LevelLow, LevelHigh, LevelLow, LevelHigh, LevelLow, LevelHigh}
	for i, l := range levels {
		edge := d.Observe(l, now.Add(time.Duration(i*10)*time.Millisecond))
		if edge != EdgeNone {
			t.Errorf("sample %d (%s): got %s, want no edge", i, l, edge)
		}
	}
	if d.Stable() != LevelHigh {
		t.Errorf("stable after bounce: got %s, want HIGH", d.Stable())
	}
}

func TestBounceResetsPendingTimer(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(testDebounce)

	d.Observe(LevelLow, now)
	d.Observe(LevelHigh, now.Add(10*time.Millisecond)) // bounce back
	d.Observe(LevelLow, now.Add(20*time.Millisecond))  // pending restarts here

	// 30ms after the original low but only 10ms after the restart.
	if edge := d.Observe(LevelLow, now.Add(30*time.Millisecond)); edge != EdgeNone {
		t.Errorf("at 30ms from first low: got %s, want no edge (timer reset)", edge)
	}

	edge := d.Observe(LevelLow, now.Add(50*time.Millisecond))
	if edge != EdgePressed {
		t.Errorf("at 30ms from restart: got %s, want PRESSED", edge)
	}
}

func TestSustainedChangeYieldsExactlyOneEdge(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(testDebounce)

	edges := 0
	for i := 0; i < 20; i++ {
		if d.Observe(LevelLow, now.Add(time.Duration(i*10)*time.Millisecond)) == EdgePressed {
			edges++
		}
	}
	if edges != 1 {
		t.Errorf("sustained low: got %d pressed edges, want exactly 1", edges)
	}
}

func TestHeldAtStartupFiresOnce(t *testing.T) {
	// Button already down when the daemon starts: one press, not a storm.
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(testDebounce)

	edges := 0
	for i := 0; i < 50; i++ {
		if d.Observe(LevelLow, now.Add(time.Duration(i*20)*time.Millisecond)) == EdgePressed {
			edges++
		}
	}
	if edges != 1 {
		t.Errorf("held at startup: got %d pressed edges, want 1", edges)
	}
}
