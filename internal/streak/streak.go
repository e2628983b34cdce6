// Package streak counts consecutive study days.
package streak

import (
	"context"
	"time"

	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/repository"
)

const dayKey = "2006-01-02"

// Count returns the number of consecutive calendar days ending at ref's day
// that appear in days. When ref's own day has no session the count starts
// from the day before: a streak is not broken until the day is over.
// Days are compared in ref's location.
func Count(days []time.Time, ref time.Time) int {
	if len(days) == 0 {
		return 0
	}
	loc := ref.Location()
	studied := make(map[string]bool, len(days))
	for _, d := range days {
		studied[d.In(loc).Format(dayKey)] = true
	}

	cursor, _ := repository.DayBounds(ref)
	if !studied[cursor.Format(dayKey)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	n := 0
	for studied[cursor.Format(dayKey)] {
		n++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return n
}

// Calculator computes an owner's streak from their stored sessions.
type Calculator struct {
	sessions repository.SessionSummaryRepository
	loc      *time.Location
}

// NewCalculator returns a Calculator that buckets sessions into days in loc.
// A nil loc means time.Local.
func NewCalculator(sessions repository.SessionSummaryRepository, loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{sessions: sessions, loc: loc}
}

func (c *Calculator) Calculate(ctx context.Context, ownerID string, ref time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("streak")
	ref = ref.In(c.loc)

	days, err := c.sessions.SessionDays(ctx, ownerID, ref)
	if err != nil {
		log.Error("failed to load session days: %v", err)
		return 0, err
	}
	n := Count(days, ref)
	log.Debug("streak for %s: %d days (%d study days on record)", ref.Format(dayKey), n, len(days))
	return n, nil
}
