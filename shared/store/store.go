// Package store is the key-value slot store the managers persist their collections to.
//
// Values are JSON encoded and written whole on every save. Keys are namespaced
// as "<prefix>:<key>" before they reach a Driver.
package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"pawstay/config"
	"pawstay/infras/otel"
	"pawstay/shared/constant"

	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("store: key not found")

const keySeparator = ":"

// Driver moves raw bytes in and out of a backend. Read returns ErrNotFound for absent keys.
type Driver interface {
	Write(ctx context.Context, key string, value []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

type Store interface {
	Save(ctx context.Context, key string, value any) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) (err error)
}

type storeImpl struct {
	driver Driver
	prefix string
	otel   otel.Otel
}

func New(cfg *config.Config, driver Driver, ot otel.Otel) Store {
	return &storeImpl{
		driver: driver,
		prefix: cfg.Store.Prefix,
		otel:   ot,
	}
}

func (s *storeImpl) key(key string) string {
	if s.prefix == "" {
		return key
	}

	return s.prefix + keySeparator + key
}

// Save implements Store.
func (s *storeImpl) Save(ctx context.Context, key string, value any) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelKeyAttributeKey, key)

	data, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("Store", "Save").Msg("failed to marshal slot")

		return fmt.Errorf("failed to marshal slot value: %w", err)
	}

	if err = s.driver.Write(ctx, s.key(key), data); err != nil {
		log.Error().Err(err).Str("key", key).Str("Store", "Save").Msg("failed to write slot")

		return fmt.Errorf("failed to write slot value: %w", err)
	}

	log.Trace().Str("Store", "Save").Str("key", key).Int("bytes", len(data)).Msg("slot written")

	return nil
}

// Get implements Store. It returns an error wrapping ErrNotFound when the key is absent.
func (s *storeImpl) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelKeyAttributeKey, key)

	data, err := s.driver.Read(ctx, s.key(key))
	if err != nil {
		return fmt.Errorf("failed to read slot value: %w", err)
	}

	if err = json.Unmarshal(data, value); err != nil {
		log.Error().Err(err).Str("key", key).Str("Store", "Get").Msg("failed to unmarshal slot")

		return fmt.Errorf("failed to unmarshal slot value: %w", err)
	}

	return nil
}

// Delete implements Store. Deleting an absent key is not an error.
func (s *storeImpl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelKeyAttributeKey, key)

	if err = s.driver.Remove(ctx, s.key(key)); err != nil && !errors.Is(err, ErrNotFound) {
		log.Error().Err(err).Str("key", key).Str("Store", "Delete").Msg("failed to delete slot")

		return fmt.Errorf("failed to delete slot value: %w", err)
	}

	return nil
}
