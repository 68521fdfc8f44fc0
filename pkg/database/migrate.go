package database

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/eduquest/admin-api/migrations"
)

var gooseRunFunc = goose.Run // mockable

// Migrate runs a goose command (up, down, status, version, redo, reset)
// against the embedded admin schema migrations.
func Migrate(db *sql.DB, command, table string, args ...string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if table != "" {
		goose.SetTableName(table)
	}
	if err := gooseRunFunc(command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
