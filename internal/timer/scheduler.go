// Package timer provides a virtual-time scheduler for repeating and one-shot tasks.
//
// The scheduler never starts goroutines. Time only moves when Advance is
// called, so the game loop drives it with its frame delta and tests drive it by
// hand. All callbacks run on the goroutine calling Advance.
package timer

import (
	"container/heap"
	"time"
)

// Task is a handle to a scheduled callback.
type Task struct {
	due       time.Duration
	period    time.Duration // 0 for one-shot tasks
	seq       uint64        // Scheduling order, breaks ties between equal due times
	fn        func()
	cancelled bool
	done      bool
	index     int // Position in the heap, -1 when not queued
	sched     *Scheduler
}

// Cancel makes the task inert. A cancelled task never runs again, even if it is
// already due within the Advance call that is currently executing.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
	if t.sched != nil && t.index >= 0 {
		heap.Remove(&t.sched.queue, t.index)
	}
}

// Active reports whether the task can still run.
func (t *Task) Active() bool {
	return t != nil && !t.cancelled && !t.done
}

// Scheduler runs tasks against a virtual clock.
// It is not safe for concurrent use.
type Scheduler struct {
	now     time.Duration
	nextSeq uint64
	queue   taskQueue
}

// New creates a scheduler with its clock at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every schedules fn to run every period, first at Now()+period.
// Non-positive periods are treated as one nanosecond.
func (s *Scheduler) Every(period time.Duration, fn func()) *Task {
	if period <= 0 {
		period = time.Nanosecond
	}
	return s.schedule(period, period, fn)
}

// After schedules fn to run once at Now()+delay.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	return s.schedule(delay, 0, fn)
}

func (s *Scheduler) schedule(delay, period time.Duration, fn func()) *Task {
	t := &Task{
		due:    s.now + delay,
		period: period,
		seq:    s.nextSeq,
		fn:     fn,
		index:  -1,
		sched:  s,
	}
	s.nextSeq++
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by d, running every task that falls due in
// order of due time. Repeating tasks fire once per elapsed period.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)

		s.now = next.due
		if next.period > 0 {
			// Requeue before running so the callback can cancel it
			next.due += next.period
			next.seq = s.nextSeq
			s.nextSeq++
			heap.Push(&s.queue, next)
		} else {
			next.done = true
		}
		next.fn()
	}

	s.now = target
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// taskQueue is a min-heap ordered by due time, then scheduling order.
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
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
