package components

import (
	"time"

	"ecosoap/internal/selector"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"
)

// Timer ids are unique across schedulers so a stale tick can never fire a
// newer task.
var lastTimerID = atomic.NewInt64(0)

// TimerFiredMsg is delivered when a scheduled task's delay has elapsed.
type TimerFiredMsg struct {
	ID int64
}

// Scheduler implements selector.Scheduler on top of Bubble Tea ticks, so
// callbacks run inside Update like every other event. Cancelled tasks still
// produce a TimerFiredMsg; Fire ignores it.
type Scheduler struct {
	pending map[int64]func()
	queued  []tea.Cmd
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[int64]func())}
}

func (s *Scheduler) Schedule(delay time.Duration, fn func()) selector.Handle {
	id := lastTimerID.Inc()
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(delay, func(time.Time) tea.Msg {
		return TimerFiredMsg{ID: id}
	}))
	return timerHandle{s: s, id: id}
}

// Cmd returns the ticks scheduled since the last call.
func (s *Scheduler) Cmd() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Fire runs the task for id if it is still pending and reports whether it ran.
func (s *Scheduler) Fire(id int64) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// Pending is the number of tasks that have neither fired nor been cancelled.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

type timerHandle struct {
	s  *Scheduler
	id int64
}

func (h timerHandle) Cancel() {
	delete(h.s.pending, h.id)
}
