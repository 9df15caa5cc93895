package repositories

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// MigrationsFS holds one migration directory per supported store.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var MigrationsFS embed.FS

// MigratePostgres brings the schema at databaseURL up to date.
func MigratePostgres(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open postgres database %w", err)
	}
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver %w", err)
	}

	source, err := iofs.New(MigrationsFS, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("failed to create migration source %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "catalog", driver)
	if err != nil {
		return fmt.Errorf("failed to instantiate migrations %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations %w", err)
	}
	return nil
}
