package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"pawstay/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnection = 2
	maxOpenConnection = 4
)

// DSN builds the connection url of the slot database. Extra query values are appended as given.
func DSN(cfg *config.Config, extra url.Values) string {
	write := cfg.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if write.Timezone != "" {
		query.Set("timezone", write.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     DBName(cfg),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// DBName applies the optional database prefix, letting several deployments share one server.
func DBName(cfg *config.Config) string {
	return cfg.DB.Postgres.Prefix + cfg.DB.Postgres.Write.Name
}

// New dials the slot database, retrying up to MaxRetry times before giving up.
func New(cfg *config.Config) (*sqlx.DB, error) {
	attempts := max(cfg.DB.Postgres.MaxRetry, 1)
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		var db *sqlx.DB

		db, err = sqlx.Connect("postgres", DSN(cfg, nil))
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnection)
			db.SetMaxOpenConns(maxOpenConnection)

			log.Info().
				Str("host", cfg.DB.Postgres.Write.Host).
				Str("dbName", DBName(cfg)).
				Msg("Connected to slot database")

			return db, nil
		}

		log.Error().
			Err(err).
			Str("dbName", DBName(cfg)).
			Int("attempt", attempt).
			Msg("Failed connecting to slot database")

		if attempt < attempts {
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("connecting to %s after %d attempts: %w", DBName(cfg), attempts, err)
}
