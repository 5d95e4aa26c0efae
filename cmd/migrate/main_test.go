package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE pedidos (numero_pedido text);
ALTER TABLE pedidos ADD COLUMN canal text;

-- +migrate Down
DROP TABLE pedidos;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE pedidos")
		assert.Contains(t, up, "ALTER TABLE pedidos")
		assert.NotContains(t, up, "DROP TABLE pedidos")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE pedidos")
		assert.NotContains(t, down, "CREATE TABLE pedidos")
	})
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.sql", "0001_a.sql", "0003_c.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- +migrate Up\n"), 0o644))
	}

	files, err := migrationFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql", "0003_c.sql"}, names)
}

// Every shipped migration must carry both sections.
func TestShippedMigrations(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		content, err := os.ReadFile(f)
		require.NoError(t, err)
		assert.NotEmpty(t, strings.TrimSpace(extractMigrationPart(string(content), "Up")), f)
		assert.NotEmpty(t, strings.TrimSpace(extractMigrationPart(string(content), "Down")), f)
	}
}

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRunMigrationsUp(t *testing.T) {
	t.Run("Applies pending and skips applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		first := writeMigration(t, dir, "0001_catalog.sql", "-- +migrate Up\nCREATE TABLE productos (id uuid);\n-- +migrate Down\nDROP TABLE productos;")
		second := writeMigration(t, dir, "0002_pedidos.sql", "-- +migrate Up\nCREATE TABLE pedidos (id text);\n-- +migrate Down\nDROP TABLE pedidos;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_catalog.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0002_pedidos.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE pedidos").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("0002_pedidos.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, runMigrationsUp(db, []string{first, second}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure rolls back and is not recorded", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		f := writeMigration(t, t.TempDir(), "0001_bad.sql", "-- +migrate Up\nCREATE TABLE broken (;\n")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_bad.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE broken").WillReturnError(errors.New("syntax error"))
		mock.ExpectRollback()

		err = runMigrationsUp(db, []string{f})
		assert.ErrorContains(t, err, "0001_bad.sql")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Up section", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		f := writeMigration(t, t.TempDir(), "0001_empty.sql", "-- +migrate Down\nSELECT 1;\n")
		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_empty.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		assert.ErrorContains(t, runMigrationsUp(db, []string{f}), "no Up section")
	})
}

func TestRunMigrationsDown(t *testing.T) {
	t.Run("Rolls back latest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		f := writeMigration(t, t.TempDir(), "0002_pedidos.sql", "-- +migrate Up\nCREATE TABLE pedidos (id text);\n-- +migrate Down\nDROP TABLE pedidos;\n")

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0002_pedidos.sql"))
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE pedidos").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("0002_pedidos.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, runMigrationsDown(db, []string{f}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		require.NoError(t, runMigrationsDown(db, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("File missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0009_gone.sql"))

		assert.ErrorContains(t, runMigrationsDown(db, nil), "0009_gone.sql")
	})
}

func TestRun_UnknownMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorContains(t, run(db, "sideways", t.TempDir()), "unknown mode")
}
