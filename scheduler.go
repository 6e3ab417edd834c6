package main

import (
	"sort"
	"time"
)

// TaskID identifies a scheduled task. Zero means "no task".
type TaskID uint64

type scheduledTask struct {
	id  TaskID
	due time.Time
	fn  func()
}

// Scheduler is the event loop's timer queue. Tasks never run on their own
// goroutine: they fire from Advance, which the game loop calls once per frame,
// so a fired task is just another event processed to completion.
type Scheduler struct {
	now    time.Time
	nextID TaskID
	tasks  []scheduledTask // ordered by due, then id
}

// NewScheduler creates a Scheduler whose clock starts at now
func NewScheduler(now time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Now returns the loop's notion of current time
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to run once d after the current loop time
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	task := scheduledTask{id: s.nextID, due: s.now.Add(d), fn: fn}

	// Insert after every task due at or before this one so equal deadlines
	// keep submission order.
	i := sort.Search(len(s.tasks), func(i int) bool {
		return s.tasks[i].due.After(task.due)
	})
	s.tasks = append(s.tasks, scheduledTask{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = task

	return task.id
}

// Cancel removes a pending task. Returns false if it already fired or never existed.
func (s *Scheduler) Cancel(id TaskID) bool {
	if id == 0 {
		return false
	}
	for i, task := range s.tasks {
		if task.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of tasks waiting to fire
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock to now and runs every task due by then, earliest
// first. While a task runs the clock reads its deadline, so work it schedules
// is relative to when it was supposed to fire rather than to frame jitter.
// Returns the number of tasks run. The clock never moves backwards.
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for len(s.tasks) > 0 && !s.tasks[0].due.After(now) {
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		if task.due.After(s.now) {
			s.now = task.due
		}
		task.fn()
		fired++
	}
	if now.After(s.now) {
		s.now = now
	}
	return fired
}

// Clear drops every pending task
func (s *Scheduler) Clear() {
	s.tasks = nil
}
