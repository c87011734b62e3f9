package sched

import (
	"reflect"
	"testing"
	"time"
)

func TestAfterFiresOnceAtDueTime(t *testing.T) {
	s := New()
	var firedAt []time.Duration
	s.After(2*time.Second, func() { firedAt = append(firedAt, s.Now()) })

	s.Advance(1999 * time.Millisecond)
	if len(firedAt) != 0 {
		t.Fatalf("task fired early at %v", firedAt)
	}

	s.Advance(time.Millisecond)
	s.Advance(10 * time.Second)
	if !reflect.DeepEqual(firedAt, []time.Duration{2 * time.Second}) {
		t.Errorf("firedAt = %v, expected [2s]", firedAt)
	}
	if s.Now() != 12*time.Second {
		t.Errorf("Now() = %v, expected 12s", s.Now())
	}
}

func TestEveryRepeats(t *testing.T) {
	s := New()
	count := 0
	task := s.Every(100*time.Millisecond, func() { count++ })

	s.Advance(time.Second)
	if count != 10 {
		t.Errorf("count = %d, expected 10", count)
	}

	task.Cancel()
	s.Advance(time.Second)
	if count != 10 {
		t.Errorf("canceled task kept firing, count = %d", count)
	}
	if task.Active() {
		t.Error("canceled task should not be active")
	}
}

func TestCancelFromOwnCallback(t *testing.T) {
	s := New()
	count := 0
	var task *Task
	task = s.Every(16*time.Millisecond, func() {
		count++
		if count == 3 {
			task.Cancel()
		}
	})

	s.Advance(time.Second)
	if count != 3 {
		t.Errorf("count = %d, expected 3", count)
	}
}

func TestOrderingByDueTimeThenScheduleOrder(t *testing.T) {
	s := New()
	var order []string
	s.After(20*time.Millisecond, func() { order = append(order, "b") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(20*time.Millisecond, func() { order = append(order, "c") })

	s.Advance(time.Second)
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, expected [a b c]", order)
	}
}

func TestTasksScheduledDuringAdvance(t *testing.T) {
	s := New()
	var firedAt []time.Duration
	s.After(time.Second, func() {
		s.After(500*time.Millisecond, func() { firedAt = append(firedAt, s.Now()) })
	})

	s.Advance(2 * time.Second)
	if !reflect.DeepEqual(firedAt, []time.Duration{1500 * time.Millisecond}) {
		t.Errorf("firedAt = %v, expected [1.5s]", firedAt)
	}
}

func TestCancelAllRejectsStaleTasks(t *testing.T) {
	s := New()
	stale := 0
	fresh := 0
	old := s.After(time.Second, func() { stale++ })
	s.Every(100*time.Millisecond, func() { stale++ })

	epoch := s.Epoch()
	s.CancelAll()
	if s.Epoch() != epoch+1 {
		t.Errorf("Epoch() = %d, expected %d", s.Epoch(), epoch+1)
	}
	s.After(time.Second, func() { fresh++ })

	s.Advance(5 * time.Second)
	if stale != 0 {
		t.Errorf("stale tasks fired %d times", stale)
	}
	if fresh != 1 {
		t.Errorf("fresh task fired %d times, expected 1", fresh)
	}
	if old.Active() {
		t.Error("task from previous epoch should not be active")
	}
}

func TestCancelAllInsideCallback(t *testing.T) {
	s := New()
	later := 0
	s.After(time.Second, func() { s.CancelAll() })
	s.After(time.Second, func() { later++ })
	s.Every(300*time.Millisecond, func() { later++ })

	s.Advance(3 * time.Second)
	// The periodic task fires at 0.3s, 0.6s and 0.9s before the reset.
	if later != 3 {
		t.Errorf("later = %d, expected 3", later)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestAdvanceNonPositiveIsNoop(t *testing.T) {
	s := New()
	fired := false
	s.After(0, func() { fired = true })

	s.Advance(0)
	s.Advance(-time.Second)
	if fired || s.Now() != 0 {
		t.Errorf("non-positive Advance should do nothing (fired=%v now=%v)", fired, s.Now())
	}

	s.Advance(time.Nanosecond)
	if !fired {
		t.Error("zero-delay task should fire on the next Advance")
	}
}

func TestEveryPanicsOnBadInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Every(0) should panic")
		}
	}()
	New().Every(0, func() {})
}
