package tracker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/testutil"
)

type summarizeFunc func(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error)

func (f summarizeFunc) Summarize(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error) {
	return f(ctx, ownerID, date)
}

func TestBoard_FailedOwnersAreForgotten(t *testing.T) {
	board := NewBoard(summarizeFunc(func(_ context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error) {
		if ownerID == "keeper" {
			return &models.TrackerSummary{Date: date}, nil
		}
		return nil, errors.New("store down")
	}))
	ctx := testutil.Context()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		_, err := board.Select(ctx, fmt.Sprintf("owner-%d", i), date)
		require.Error(t, err)
	}
	_, err := board.Select(ctx, "keeper", date)
	require.NoError(t, err)

	assert.Len(t, board.owners, 1)
	_, ok := board.owners["keeper"]
	assert.True(t, ok)
}

func TestBoard_FailureForgetsPublishedSummary(t *testing.T) {
	fail := false
	board := NewBoard(summarizeFunc(func(_ context.Context, _ string, date time.Time) (*models.TrackerSummary, error) {
		if fail {
			return nil, errors.New("store down")
		}
		return &models.TrackerSummary{Date: date}, nil
	}))
	ctx := testutil.Context()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := board.Select(ctx, "alice", date)
	require.NoError(t, err)
	require.Len(t, board.owners, 1)

	fail = true
	_, err = board.Select(ctx, "alice", date)
	require.Error(t, err)
	assert.Empty(t, board.owners)

	_, ok := board.Current("alice")
	assert.False(t, ok)
}
