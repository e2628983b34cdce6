package streak_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashkata/internal/repository/memory"
	"github.com/vytor/flashkata/internal/streak"
	"github.com/vytor/flashkata/internal/testutil"
	"github.com/vytor/flashkata/internal/testutil/mocks"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCount(t *testing.T) {
	ref := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"no days", nil, 0},
		{"only today", []time.Time{day(2024, 3, 10)}, 1},
		{"three consecutive", []time.Time{day(2024, 3, 10), day(2024, 3, 9), day(2024, 3, 8)}, 3},
		{"gap breaks streak", []time.Time{day(2024, 3, 10), day(2024, 3, 9), day(2024, 3, 7)}, 2},
		{"today empty counts from yesterday", []time.Time{day(2024, 3, 9), day(2024, 3, 8)}, 2},
		{"today and yesterday empty", []time.Time{day(2024, 3, 8), day(2024, 3, 7)}, 0},
		{"future days ignored", []time.Time{day(2024, 3, 11), day(2024, 3, 10)}, 1},
		{"unordered input", []time.Time{day(2024, 3, 8), day(2024, 3, 10), day(2024, 3, 9)}, 3},
		{"old streak does not count", []time.Time{day(2024, 3, 1), day(2024, 2, 29), day(2024, 2, 28)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, streak.Count(tt.days, ref))
		})
	}
}

func TestCount_AcrossMonthBoundary(t *testing.T) {
	ref := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	days := []time.Time{day(2024, 3, 1), day(2024, 2, 29), day(2024, 2, 28)}

	assert.Equal(t, 3, streak.Count(days, ref))
}

func TestCount_UsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 03:00 UTC on the 10th is still the 9th at UTC-5.
	ref := time.Date(2024, 3, 9, 22, 0, 0, 0, loc)
	days := []time.Time{time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)}

	assert.Equal(t, 1, streak.Count(days, ref))
}

func TestCalculator_Calculate(t *testing.T) {
	ctx := testutil.Context()
	store := memory.NewStore()
	sessions := store.Sessions()

	base := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	for i, offset := range []int{0, -1, -2, -4} {
		s := testutil.Session(fmt.Sprintf("s%d", i), base.AddDate(0, 0, offset), 10*time.Minute, map[string]bool{"c1": true})
		require.NoError(t, sessions.Insert(ctx, "owner-1", s))
	}
	require.NoError(t, sessions.Insert(ctx, "owner-2", testutil.Session("other", base, time.Minute, nil)))

	calc := streak.NewCalculator(sessions, time.UTC)

	n, err := calc.Calculate(ctx, "owner-1", base.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = calc.Calculate(ctx, "owner-1", base.AddDate(0, 0, -3))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "the 17th is empty so counting starts at the 16th")

	n, err = calc.Calculate(ctx, "nobody", base)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCalculator_SessionAcrossMidnightCountsBothDays(t *testing.T) {
	ctx := testutil.Context()
	sessions := memory.NewStore().Sessions()
	late := testutil.Session("late", time.Date(2024, 5, 19, 23, 50, 0, 0, time.UTC), 20*time.Minute, nil)
	require.NoError(t, sessions.Insert(ctx, "owner-1", late))

	n, err := streak.NewCalculator(sessions, time.UTC).Calculate(ctx, "owner-1", time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCalculator_PropagatesStoreError(t *testing.T) {
	repo := new(mocks.MockSessionSummaryRepository)
	repo.On("SessionDays", mock.Anything, "owner-1", mock.Anything).Return(nil, errors.New("disk on fire"))

	calc := streak.NewCalculator(repo, time.UTC)
	_, err := calc.Calculate(context.Background(), "owner-1", time.Now())

	assert.EqualError(t, err, "disk on fire")
	repo.AssertExpectations(t)
}
