package db_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashkata/internal/db"
	"github.com/vytor/flashkata/internal/testutil"
)

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := testutil.Context()
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer testutil.MustClose(t, sqlDB)

	pending, err := db.Pending(ctx, sqlDB)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_review_sessions.sql"}, pending)

	require.NoError(t, db.Migrate(ctx, sqlDB))
	require.NoError(t, db.Migrate(ctx, sqlDB))

	pending, err = db.Pending(ctx, sqlDB)
	require.NoError(t, err)
	assert.Empty(t, pending)

	for _, table := range []string{"decks", "flashcards", "review_sessions", "review_session_results"} {
		var name string
		err := sqlDB.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "flashkata.db"))
	require.NoError(t, err)
	defer testutil.MustClose(t, database)

	var enabled int
	require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled))
	assert.Equal(t, 1, enabled)
	require.NoError(t, database.Ping())
}
