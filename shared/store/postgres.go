package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	queryUpsertSlot = `INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	querySelectSlot = `SELECT value FROM kv_slots WHERE key = $1`
	queryDeleteSlot = `DELETE FROM kv_slots WHERE key = $1`
)

type postgresDriver struct {
	db *sqlx.DB
}

// NewPostgresDriver keeps slots as rows of the kv_slots table.
func NewPostgresDriver(db *sqlx.DB) Driver {
	return &postgresDriver{
		db: db,
	}
}

func (d *postgresDriver) Write(ctx context.Context, key string, value []byte) error {
	if _, err := d.db.ExecContext(ctx, queryUpsertSlot, key, value); err != nil {
		return fmt.Errorf("failed to upsert slot: %w", err)
	}

	return nil
}

func (d *postgresDriver) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := d.db.GetContext(ctx, &value, querySelectSlot, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to select slot: %w", err)
	}

	return value, nil
}

func (d *postgresDriver) Remove(ctx context.Context, key string) error {
	if _, err := d.db.ExecContext(ctx, queryDeleteSlot, key); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	return nil
}
