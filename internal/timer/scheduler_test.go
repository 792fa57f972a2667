package timer

import (
	"testing"
	"time"
)

func TestEveryFiresOncePerPeriod(t *testing.T) {
	s := New()
	count := 0
	s.Every(50*time.Millisecond, func() { count++ })

	s.Advance(49 * time.Millisecond)
	if count != 0 {
		t.Fatalf("fired early: count=%d", count)
	}
	s.Advance(1 * time.Millisecond)
	if count != 1 {
		t.Fatalf("count=%d, want 1", count)
	}
	s.Advance(120 * time.Millisecond)
	if count != 3 {
		t.Fatalf("count=%d after catch-up, want 3", count)
	}
	if s.Now() != 170*time.Millisecond {
		t.Fatalf("Now()=%v, want 170ms", s.Now())
	}
}

func TestAfterRunsOnce(t *testing.T) {
	s := New()
	count := 0
	task := s.After(600*time.Millisecond, func() { count++ })

	s.Advance(599 * time.Millisecond)
	if count != 0 || !task.Active() {
		t.Fatalf("task ran before due: count=%d active=%v", count, task.Active())
	}
	s.Advance(time.Second)
	if count != 1 {
		t.Fatalf("count=%d, want 1", count)
	}
	if task.Active() {
		t.Fatalf("one-shot task still active after running")
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending()=%d, want 0", s.Pending())
	}
}

func TestCancelMakesTaskInert(t *testing.T) {
	s := New()
	ran := false
	task := s.After(100*time.Millisecond, func() { ran = true })
	task.Cancel()
	task.Cancel()

	s.Advance(time.Second)
	if ran {
		t.Fatalf("cancelled task ran")
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending()=%d, want 0", s.Pending())
	}
}

func TestCancelFromInsideAdvance(t *testing.T) {
	s := New()
	var later *Task
	laterRan := false

	// Both due at 100ms; the first cancels the second before it runs
	s.After(100*time.Millisecond, func() { later.Cancel() })
	later = s.After(100*time.Millisecond, func() { laterRan = true })

	s.Advance(100 * time.Millisecond)
	if laterRan {
		t.Fatalf("task cancelled by an earlier callback still ran")
	}
}

func TestRepeatingTaskCanCancelItself(t *testing.T) {
	s := New()
	count := 0
	var task *Task
	task = s.Every(10*time.Millisecond, func() {
		count++
		if count == 2 {
			task.Cancel()
		}
	})

	s.Advance(time.Second)
	if count != 2 {
		t.Fatalf("count=%d, want 2", count)
	}
}

func TestOrderingByDueTimeThenSchedulingOrder(t *testing.T) {
	s := New()
	var order []string
	s.After(30*time.Millisecond, func() { order = append(order, "c") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(30*time.Millisecond, func() { order = append(order, "d") })
	s.After(20*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(30 * time.Millisecond)

	want := []string{"a", "b", "c", "d"}
	if len(order) != len(want) {
		t.Fatalf("order=%v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
}

func TestCallbackSeesDueTime(t *testing.T) {
	s := New()
	var seen []time.Duration
	s.Every(50*time.Millisecond, func() { seen = append(seen, s.Now()) })

	s.Advance(150 * time.Millisecond)

	want := []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 150 * time.Millisecond}
	if len(seen) != len(want) {
		t.Fatalf("seen=%v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen=%v, want %v", seen, want)
		}
	}
}

func TestTaskScheduledDuringAdvance(t *testing.T) {
	s := New()
	ran := false
	s.After(10*time.Millisecond, func() {
		s.After(5*time.Millisecond, func() { ran = true })
	})

	s.Advance(12 * time.Millisecond)
	if ran {
		t.Fatalf("nested task ran before its due time")
	}
	s.Advance(3 * time.Millisecond)
	if !ran {
		t.Fatalf("nested task did not run at 15ms")
	}
}
