package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"pawstay/config"
	"pawstay/infras/postgres"
	"slices"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var actions = map[string]func(*migrate.Migrate) error{
	ActionUp:      func(m *migrate.Migrate) error { return m.Up() },
	ActionDown:    func(m *migrate.Migrate) error { return m.Steps(-1) },
	ActionStepUp:  func(m *migrate.Migrate) error { return m.Steps(1) },
	ActionDrop:    func(m *migrate.Migrate) error { return m.Down() },
	ActionVersion: logVersion,
}

func logVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("Slot table has no migration applied")

		return nil
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Slot table migration version")

	return nil
}

// Actions lists the accepted migration actions in a stable order.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	extra := url.Values{}
	extra.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)

	mig, err := migrate.New("file://"+cfg.DB.Postgres.MigrationDir, postgres.DSN(cfg, extra))
	if err != nil {
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies one migration action to the kv_slots schema. ErrNoChange is not an error.
func Run(cfg *config.Config, action string) error {
	step, ok := actions[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Slot table migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Run(cfg, ActionUp)
}
