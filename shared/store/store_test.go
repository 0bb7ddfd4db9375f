package store_test

import (
	"context"
	"errors"
	"pawstay/config"
	"pawstay/infras/otel/mocks"
	"pawstay/shared/failure"
	"pawstay/shared/store"
	storeMocks "pawstay/shared/store/mocks"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type slotRecord struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Store.Prefix = "pawstay"

	return cfg
}

func drivers(t *testing.T) map[string]store.Driver {
	t.Helper()

	fileDriver, err := store.NewFileDriver(afero.NewMemMapFs(), "data/store")
	require.NoError(t, err)

	return map[string]store.Driver{
		"memory": store.NewMemoryDriver(),
		"file":   fileDriver,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, driver := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			s := store.New(newConfig(), driver, mocks.NewOtel())
			ctx := context.Background()

			records := []slotRecord{{ID: "a", Tags: []string{"calm"}}, {ID: "b"}}
			require.NoError(t, s.Save(ctx, "records", records))

			var got []slotRecord
			require.NoError(t, s.Get(ctx, "records", &got))
			assert.Equal(t, records, got)

			require.NoError(t, s.Save(ctx, "records", []slotRecord{}))
			require.NoError(t, s.Get(ctx, "records", &got))
			assert.Empty(t, got)
		})
	}
}

func TestStore_MissingKey(t *testing.T) {
	for name, driver := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			s := store.New(newConfig(), driver, mocks.NewOtel())

			var got []slotRecord
			err := s.Get(context.Background(), "nothing", &got)

			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, driver := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			s := store.New(newConfig(), driver, mocks.NewOtel())
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, "flag", true))
			require.NoError(t, s.Delete(ctx, "flag"))
			require.NoError(t, s.Delete(ctx, "flag"))

			var flag bool
			assert.ErrorIs(t, s.Get(ctx, "flag", &flag), store.ErrNotFound)
		})
	}
}

func TestStore_PrefixesKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	driver := storeMocks.NewMockDriver(ctrl)
	s := store.New(newConfig(), driver, mocks.NewOtel())

	driver.EXPECT().Write(gomock.Any(), "pawstay:bookings", []byte(`[]`)).Return(nil)
	driver.EXPECT().Remove(gomock.Any(), "pawstay:bookings").Return(nil)

	require.NoError(t, s.Save(context.Background(), "bookings", []string{}))
	require.NoError(t, s.Delete(context.Background(), "bookings"))
}

func TestStore_FileDriverLayout(t *testing.T) {
	fs := afero.NewMemMapFs()

	driver, err := store.NewFileDriver(fs, "slots")
	require.NoError(t, err)

	s := store.New(newConfig(), driver, mocks.NewOtel())
	require.NoError(t, s.Save(context.Background(), "user_pets", []string{"x"}))

	data, err := afero.ReadFile(fs, "slots/pawstay.user_pets.json")
	require.NoError(t, err)
	assert.JSONEq(t, `["x"]`, string(data))

	exists, err := afero.Exists(fs, "slots/pawstay.user_pets.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key is not a failure", func(t *testing.T) {
		s := store.New(newConfig(), store.NewMemoryDriver(), mocks.NewOtel())

		value, ok, err := store.Load[[]slotRecord](ctx, s, "records")

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("undecodable slot is a persistence failure", func(t *testing.T) {
		driver := store.NewMemoryDriver()
		require.NoError(t, driver.Write(ctx, "pawstay:records", []byte(`{not json`)))

		s := store.New(newConfig(), driver, mocks.NewOtel())

		value, ok, err := store.Load[[]slotRecord](ctx, s, "records")

		assert.True(t, failure.IsPersistence(err))
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("stored slot decodes", func(t *testing.T) {
		s := store.New(newConfig(), store.NewMemoryDriver(), mocks.NewOtel())
		require.NoError(t, store.Persist(ctx, s, "records", []slotRecord{{ID: "a"}}))

		value, ok, err := store.Load[[]slotRecord](ctx, s, "records")

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []slotRecord{{ID: "a"}}, value)
	})
}

func TestPersist_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	driver := storeMocks.NewMockDriver(ctrl)
	driver.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	s := store.New(newConfig(), driver, mocks.NewOtel())

	err := store.Persist(context.Background(), s, "bookings", []string{})

	assert.True(t, failure.IsPersistence(err))
	assert.Contains(t, err.Error(), "bookings")
}

func TestErase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storeMocks.NewMockStore(ctrl)
	mockStore.EXPECT().Delete(gomock.Any(), "profile_image").Return(nil)

	assert.NoError(t, store.Erase(context.Background(), mockStore, "profile_image"))
}
