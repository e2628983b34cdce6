package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashkata/internal/db"
	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is pinned to one connection because every new connection to
// ":memory:" would otherwise see an empty database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ctx := logger.NewContext(context.Background(), logger.Discard())
	require.NoError(t, db.Migrate(ctx, sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Context returns a background context carrying a silent logger.
func Context() context.Context {
	return logger.NewContext(context.Background(), logger.Discard())
}

// Session builds a practice-mode summary spanning [start, start+d] with the
// given outcomes.
func Session(id string, start time.Time, d time.Duration, results map[string]bool) models.ReviewSessionSummary {
	correct, incorrect := 0, 0
	for _, ok := range results {
		if ok {
			correct++
		} else {
			incorrect++
		}
	}
	return models.ReviewSessionSummary{
		ID:                     id,
		StartDate:              start,
		CompletedDate:          start.Add(d),
		Mode:                   models.ReviewModePractice,
		CorrectScore:           correct,
		IncorrectScore:         incorrect,
		FlashcardReviewResults: results,
		FlashcardCount:         len(results),
		DeckCount:              1,
	}
}

// Deck builds a top-level deck with the given theme name.
func Deck(ownerID, id, name, theme string) models.Deck {
	t, _ := models.ThemeByName(theme)
	return models.Deck{ID: id, OwnerID: ownerID, Name: name, Theme: t, CreatedAt: time.Unix(0, 0).UTC()}
}

// Subdeck builds a deck whose parent is parentID.
func Subdeck(ownerID, id, name, theme, parentID string) models.Deck {
	d := Deck(ownerID, id, name, theme)
	d.ParentDeckID = &parentID
	return d
}
