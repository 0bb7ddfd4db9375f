package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Deferrer driven by Advance instead of wall time.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTask
	stopped bool
}

type manualTask struct {
	seq int
	at  time.Duration
	fn  func()
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return func() {}
	}

	task := &manualTask{seq: m.seq, at: m.now + d, fn: fn}
	m.seq++
	m.pending = append(m.pending, task)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.remove(task)
	}
}

func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = nil
	m.stopped = true
}

// Pending returns the number of callbacks still waiting.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.pending)
}

// Advance moves the clock forward by d and runs every callback that became due, in due order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	deadline := m.now
	m.mu.Unlock()

	for {
		task := m.popDue(deadline)
		if task == nil {
			return
		}

		task.fn()
	}
}

func (m *Manual) popDue(deadline time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at == m.pending[j].at {
			return m.pending[i].seq < m.pending[j].seq
		}

		return m.pending[i].at < m.pending[j].at
	})

	if len(m.pending) == 0 || m.pending[0].at > deadline {
		return nil
	}

	task := m.pending[0]
	m.pending = m.pending[1:]

	return task
}

func (m *Manual) remove(task *manualTask) {
	for i, t := range m.pending {
		if t == task {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)

			return
		}
	}
}
