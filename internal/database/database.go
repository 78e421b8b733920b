package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver ("sqlite")
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// Supported driver identifiers, matching config.DATABASE_DRIVER values.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// New creates a new database connection pool for the given driver.
func New(driver, dataSourceName string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch driver {
	case SQLite:
		db, err = sqlx.Open("sqlite", sqliteDSN(dataSourceName))
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer at a time, and an in-memory database only
		// lives as long as its single connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	case Postgres:
		db, err = sqlx.Open("pgx", dataSourceName)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// Migrate applies the embedded schema migrations for the handle's dialect.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch db.DriverName() {
	case "sqlite":
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	case "pgx":
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}

	fsys, err := fs.Sub(migrationFiles, dir)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
