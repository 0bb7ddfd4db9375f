// Package observer is the in-process change feed that managers publish to after every mutation.
package observer

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionCleared Action = "cleared"
)

const (
	CollectionPets          = "pets"
	CollectionFavorites     = "favorites"
	CollectionBookings      = "bookings"
	CollectionNotifications = "notifications"
	CollectionChat          = "chat"
	CollectionMatchRequests = "match_requests"
	CollectionPlaydates     = "playdates"
	CollectionSession       = "session"
)

// Change describes one mutation of a manager-owned collection.
type Change struct {
	Collection string `json:"collection"`
	Action     Action `json:"action"`
	ID         string `json:"id,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

type Handler func(change Change)

type Hub interface {
	Publish(change Change)
	Subscribe(handler Handler) (unsubscribe func())
}

type hubImpl struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]Handler
}

func New() Hub {
	return &hubImpl{
		handlers: make(map[int]Handler),
	}
}

// Publish calls every subscriber synchronously on the caller's goroutine. Managers publish
// while holding their own lock, so a handler must not call back into the publishing manager.
func (h *hubImpl) Publish(change Change) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.handlers))

	for _, handler := range h.handlers {
		handlers = append(handlers, handler)
	}
	h.mu.RUnlock()

	log.Trace().Str("collection", change.Collection).Str("action", string(change.Action)).Str("id", change.ID).Msg("publishing change")

	for _, handler := range handlers {
		handler(change)
	}
}

func (h *hubImpl) Subscribe(handler Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.handlers[id] = handler

	var once sync.Once

	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.handlers, id)
			h.mu.Unlock()
		})
	}
}
