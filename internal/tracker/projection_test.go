package tracker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/testutil"
	"github.com/vytor/flashkata/internal/tracker"
)

func TestProjectItem(t *testing.T) {
	item := models.ChartItem{
		Deck:             testutil.Subdeck(owner, "d2", "Graphs", "green", "d1"),
		FlashcardResults: map[string]bool{"a": true, "b": false, "c": true, "d": true},
	}

	v := tracker.ProjectItem(item)
	assert.Equal(t, "d2", v.DeckID)
	assert.True(t, v.IsSubdeck)
	assert.False(t, v.IsDeleted)
	assert.Equal(t, "#86EFAC", v.Color)
	assert.Equal(t, 4, v.FlashcardCount)
	assert.Equal(t, 3, v.CorrectCount)
	assert.Equal(t, 1, v.IncorrectCount)
	require.NotNil(t, v.PercentCorrect)
	assert.Equal(t, 75.0, *v.PercentCorrect)
}

func TestProjectItem_EmptyBucketHasNoPercent(t *testing.T) {
	v := tracker.ProjectItem(models.ChartItem{Deck: models.DeletedDeck()})

	assert.True(t, v.IsDeleted)
	assert.Equal(t, "Deleted", v.DeckName)
	assert.Equal(t, 0, v.FlashcardCount)
	assert.Nil(t, v.PercentCorrect)
}

func TestProjectSummary(t *testing.T) {
	s := &models.TrackerSummary{
		Date:               time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		CardsLearned:       2,
		Streak:             4,
		TimeStudied:        3725 * time.Second,
		TimeStudiedDisplay: "1:02",
		ChartItems: []models.ChartItem{
			{Deck: testutil.Deck(owner, "d1", "Algorithms", "blue"), FlashcardResults: map[string]bool{"c1": true, "c2": false}},
		},
	}

	v := tracker.ProjectSummary(s)
	assert.Equal(t, "2024-06-03", v.Date)
	assert.Equal(t, int64(3725), v.TimeStudiedSeconds)
	assert.Equal(t, "1:02", v.TimeStudied)
	require.Len(t, v.Charts, 1)
	assert.Equal(t, 50.0, *v.Charts[0].PercentCorrect)
}
