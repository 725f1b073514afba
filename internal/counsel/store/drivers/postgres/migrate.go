package postgres

import (
	"errors"

	"github.com/globalgrad/counsellor/internal/counsel/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"
)

// ApplyMigrations applies any pending migrations embedded in the binary. The
// migrate driver needs database/sql, so the pool is wrapped for the duration.
// The driver pins one pool connection until the instance is closed.
func (s *Store) ApplyMigrations() error {
	db := stdlib.OpenDBFromPool(s.pool)

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return err
	}
	defer func() {
		_, _ = instance.Close()
	}()

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
