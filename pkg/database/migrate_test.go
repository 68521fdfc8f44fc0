package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRunsGooseCommand(t *testing.T) {
	original := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = original })

	var gotCommand, gotDir string
	var gotArgs []string
	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		gotCommand = command
		gotDir = dir
		gotArgs = args
		return nil
	}

	require.NoError(t, Migrate(nil, "up-to", "admin_goose_db_version", "3"))
	assert.Equal(t, "up-to", gotCommand)
	assert.Equal(t, ".", gotDir)
	assert.Equal(t, []string{"3"}, gotArgs)
}

func TestMigrateWrapsError(t *testing.T) {
	original := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = original })

	boom := errors.New("boom")
	gooseRunFunc = func(string, *sql.DB, string, ...string) error { return boom }

	err := Migrate(nil, "down", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "goose down")
}
