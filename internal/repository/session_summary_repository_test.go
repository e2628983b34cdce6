package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashkata/internal/repository"
)

func TestSpannedDays(t *testing.T) {
	start := time.Date(2024, 5, 19, 23, 50, 0, 0, time.UTC)

	assert.Equal(t, []time.Time{
		time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	}, repository.SpannedDays(start, start.Add(20*time.Minute), time.UTC))

	assert.Equal(t, []time.Time{
		time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC),
	}, repository.SpannedDays(start, start.Add(5*time.Minute), time.UTC))
}

func TestSpannedDays_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 14:50-15:10 UTC crosses midnight in Tokyo only.
	start := time.Date(2024, 5, 19, 14, 50, 0, 0, time.UTC)

	assert.Len(t, repository.SpannedDays(start, start.Add(20*time.Minute), time.UTC), 1)
	assert.Equal(t, []time.Time{
		time.Date(2024, 5, 19, 0, 0, 0, 0, tokyo),
		time.Date(2024, 5, 20, 0, 0, 0, 0, tokyo),
	}, repository.SpannedDays(start, start.Add(20*time.Minute), tokyo))
}

func TestDaySet_StopsAtUntilDay(t *testing.T) {
	until := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)
	set := repository.NewDaySet(until)
	set.Add(time.Date(2024, 5, 20, 23, 50, 0, 0, time.UTC), time.Date(2024, 5, 21, 0, 10, 0, 0, time.UTC))
	set.Add(time.Date(2024, 5, 18, 9, 0, 0, 0, time.UTC), time.Date(2024, 5, 18, 9, 5, 0, 0, time.UTC))
	set.Add(time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC), time.Date(2024, 5, 20, 9, 5, 0, 0, time.UTC))

	assert.Equal(t, []time.Time{
		time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC),
	}, set.Days())
}
