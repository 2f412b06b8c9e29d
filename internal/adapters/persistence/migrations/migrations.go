package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed mysql/*.sql postgres/*.sql
var migrationsFS embed.FS

// Up applies every pending migration for the given driver ("mysql" or "postgres").
func Up(driver, dsn string) error {
	m, closeFn, err := newMigrate(driver, dsn)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Down rolls every migration back to version 0.
func Down(driver, dsn string) error {
	m, closeFn, err := newMigrate(driver, dsn)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Version reports the current schema version and whether it is dirty.
func Version(driver, dsn string) (uint, bool, error) {
	m, closeFn, err := newMigrate(driver, dsn)
	if err != nil {
		return 0, false, err
	}
	defer closeFn()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func newMigrate(driver, dsn string) (*migrate.Migrate, func(), error) {
	sqlDriver := "mysql"
	if driver == "postgres" {
		// pgx stdlib driver
		sqlDriver = "pgx"
	} else if driver != "mysql" {
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	sqlDB, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, nil, err
	}

	var dbDriver database.Driver
	if driver == "postgres" {
		dbDriver, err = postgres.WithInstance(sqlDB, &postgres.Config{})
	} else {
		dbDriver, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	}
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	sourceDriver, err := iofs.New(migrationsFS, driver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, driver, dbDriver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return m, func() { m.Close() }, nil
}
