package store

import (
	"context"
	"sync"
)

type memoryDriver struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryDriver keeps slots in process memory. Nothing survives a restart.
func NewMemoryDriver() Driver {
	return &memoryDriver{
		slots: make(map[string][]byte),
	}
}

func (d *memoryDriver) Write(_ context.Context, key string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.slots[key] = append([]byte(nil), value...)

	return nil
}

func (d *memoryDriver) Read(_ context.Context, key string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	value, ok := d.slots[key]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

func (d *memoryDriver) Remove(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.slots, key)

	return nil
}
