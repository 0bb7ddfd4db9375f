// Package scheduler runs deferred callbacks that can be cancelled individually or all at once.
package scheduler

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Deferrer interface {
	// After runs fn once d has elapsed unless the returned cancel is called first.
	After(d time.Duration, fn func()) (cancel func())
	// Stop cancels every pending callback. Later calls to After are dropped.
	Stop()
}

type timerDeferrer struct {
	mu      sync.Mutex
	next    int
	pending map[int]*time.Timer
	stopped bool
}

func New() Deferrer {
	return &timerDeferrer{
		pending: make(map[int]*time.Timer),
	}
}

func (s *timerDeferrer) After(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		log.Debug().Dur("delay", d).Msg("scheduler stopped, dropping callback")

		return func() {}
	}

	id := s.next
	s.next++

	s.pending[id] = time.AfterFunc(d, func() {
		if !s.release(id) {
			return
		}

		fn()
	})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if timer, ok := s.pending[id]; ok {
			timer.Stop()
			delete(s.pending, id)
		}
	}
}

// release removes id from the pending set and reports whether it was still pending.
func (s *timerDeferrer) release(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return false
	}

	delete(s.pending, id)

	return true
}

func (s *timerDeferrer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}

	s.stopped = true

	log.Info().Msg("scheduler stopped")
}
