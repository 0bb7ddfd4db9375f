package cache

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	expires time.Time
}

type memoryCounter struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*window
}

func NewMemoryCounter() Counter {
	return newMemoryCounter(time.Now)
}

func newMemoryCounter(now func() time.Time) *memoryCounter {
	return &memoryCounter{
		now:     now,
		windows: make(map[string]*window),
	}
}

// Incr implements Counter.
func (cache *memoryCounter) Incr(_ context.Context, key string, d time.Duration) (int, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	now := cache.now()

	w, ok := cache.windows[key]
	if !ok || !now.Before(w.expires) {
		cache.sweep(now)

		w = &window{expires: now.Add(d)}
		cache.windows[key] = w
	}

	w.count++

	return w.count, nil
}

func (cache *memoryCounter) sweep(now time.Time) {
	for key, w := range cache.windows {
		if !now.Before(w.expires) {
			delete(cache.windows, key)
		}
	}
}
