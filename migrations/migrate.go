// Package migrations embeds the local cache schema and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Migrate brings db up to date. dialect is "sqlite3" or "postgres" and also
// selects the migration directory.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	dir, gooseDialect, err := migrationSet(dialect)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err = goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err = goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func migrationSet(dialect string) (dir, gooseDialect string, err error) {
	switch dialect {
	case "sqlite3", "sqlite":
		return "sqlite", "sqlite3", nil
	case "postgres", "pgx":
		return "postgres", "pgx", nil
	}
	return "", "", fmt.Errorf("unsupported dialect %q", dialect)
}
