// Package sched provides a single-threaded virtual-clock scheduler.
//
// Time only moves when the owner calls Advance, so everything scheduled here
// is paused simply by not advancing the clock. Each task remembers the epoch
// it was created in; CancelAll bumps the epoch and stale tasks are rejected
// when they come due, not only when they are scheduled.
package sched

import (
	"container/heap"
	"time"
)

// Task is a handle to a scheduled callback.
type Task struct {
	at       time.Duration
	interval time.Duration // 0 for one-shot tasks
	seq      uint64
	epoch    uint64
	fn       func()
	canceled bool
	done     bool
	index    int
}

// Cancel prevents any future firing of the task. Safe to call repeatedly
// and from inside the task's own callback.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.canceled = true
}

// Active reports whether the task can still fire.
func (t *Task) Active() bool {
	return t != nil && !t.canceled && !t.done
}

// Scheduler runs tasks against a virtual clock. Not safe for concurrent use.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	epoch uint64
	queue taskQueue
}

// New creates a scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Epoch returns the current generation.
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

// Pending returns the number of live tasks of the current epoch.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if t.epoch == s.epoch && !t.canceled {
			n++
		}
	}
	return n
}

// After schedules fn to run once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	return s.push(s.now+d, 0, fn)
}

// Every schedules fn to run every interval, starting one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Task {
	if interval <= 0 {
		panic("sched: non-positive interval")
	}
	return s.push(s.now+interval, interval, fn)
}

func (s *Scheduler) push(at, interval time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{
		at:       at,
		interval: interval,
		seq:      s.seq,
		epoch:    s.epoch,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	return t
}

// CancelAll invalidates every task scheduled so far.
func (s *Scheduler) CancelAll() {
	s.epoch++
	for _, t := range s.queue {
		t.canceled = true
	}
	s.queue = s.queue[:0]
}

// Advance moves the clock forward by d, firing due tasks in order of due
// time, ties broken by scheduling order. Tasks scheduled by callbacks fire
// within the same call if they fall due before the new time.
func (s *Scheduler) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	target := s.now + d

	for len(s.queue) > 0 && s.queue[0].at <= target {
		t := heap.Pop(&s.queue).(*Task)
		if t.canceled || t.epoch != s.epoch {
			t.done = true
			continue
		}
		s.now = t.at

		if t.interval > 0 {
			// Re-queue before running so the callback may cancel it.
			t.at += t.interval
			s.seq++
			t.seq = s.seq
			heap.Push(&s.queue, t)
		} else {
			t.done = true
		}
		t.fn()
	}

	s.now = target
}

// taskQueue is a min-heap on (at, seq).
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
