package store

import (
	"context"
	"errors"
	"pawstay/shared/failure"
)

// Load decodes the slot at key into a fresh T. ok is false when nothing usable was
// stored; err is a persistence failure only when the slot exists but cannot be read.
func Load[T any](ctx context.Context, s Store, key string) (value T, ok bool, err error) {
	var decoded T

	err = s.Get(ctx, key, &decoded)
	if errors.Is(err, ErrNotFound) {
		return value, false, nil
	}

	if err != nil {
		return value, false, failure.Persistence(key, err)
	}

	return decoded, true, nil
}

// Persist writes value under key and reports failures as persistence failures.
func Persist(ctx context.Context, s Store, key string, value any) error {
	return failure.Persistence(key, s.Save(ctx, key, value))
}

// Erase removes key and reports failures as persistence failures.
func Erase(ctx context.Context, s Store, key string) error {
	return failure.Persistence(key, s.Delete(ctx, key))
}
