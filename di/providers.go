package di

import (
	"fmt"
	"pawstay/config"
	"pawstay/helper"
	"pawstay/infras/otel"
	"pawstay/infras/postgres"
	"pawstay/infras/redis"
	"pawstay/infras/s3"
	"pawstay/shared/cache"
	"pawstay/shared/constant"
	"pawstay/shared/media"
	"pawstay/shared/store"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// provideRedisClient dials redis only when the slot store lives there.
func provideRedisClient(cfg *config.Config) (*goRedis.Client, error) {
	if cfg.Store.Driver != constant.StoreDriverRedis {
		return nil, nil //nolint:nilnil
	}

	return redis.New(cfg) //nolint:wrapcheck
}

func provideStoreDriver(cfg *config.Config, client *goRedis.Client) (store.Driver, error) {
	log.Info().Str("driver", cfg.Store.Driver).Msg("selecting slot store driver")

	switch cfg.Store.Driver {
	case constant.StoreDriverFile:
		return store.NewFileDriver(afero.NewOsFs(), cfg.Store.Dir) //nolint:wrapcheck
	case constant.StoreDriverRedis:
		return store.NewRedisDriver(client), nil
	case constant.StoreDriverPostgres:
		if cfg.DB.Postgres.AutoMigrate {
			if err := helper.Up(cfg); err != nil {
				return nil, fmt.Errorf("migrating slot table: %w", err)
			}
		}

		db, err := postgres.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("opening slot database: %w", err)
		}

		return store.NewPostgresDriver(db), nil
	case constant.StoreDriverMemory:
		return store.NewMemoryDriver(), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func provideCounter(client *goRedis.Client, ot otel.Otel) cache.Counter {
	if client == nil {
		return cache.NewMemoryCounter()
	}

	return cache.NewRedisCounter(client, ot)
}

func provideMedia(cfg *config.Config, ot otel.Otel) (media.Media, error) {
	switch cfg.Media.Driver {
	case constant.MediaDriverLocal:
		return media.NewLocal(afero.NewOsFs(), cfg.Media.Dir, ot) //nolint:wrapcheck
	case constant.MediaDriverS3:
		return media.NewS3(s3.New(cfg, ot), cfg.Media.Folder, ot), nil
	}

	return nil, fmt.Errorf("unknown media driver %q", cfg.Media.Driver)
}
