package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/vytor/flashkata/internal/models"
)

// ErrDuplicate is returned by Insert when a summary with the same ID already
// exists. IDs are unique across owners.
var ErrDuplicate = errors.New("duplicate id")

// SessionSummaryRepository persists completed review sessions. Summaries are
// immutable: there is no update.
type SessionSummaryRepository interface {
	Insert(ctx context.Context, ownerID string, summary models.ReviewSessionSummary) error
	// Get returns (nil, nil) when the summary does not exist.
	Get(ctx context.Context, ownerID, id string) (*models.ReviewSessionSummary, error)
	// ListForDate returns the summaries whose [start, completed] window
	// overlaps the calendar day of date, in date's location.
	ListForDate(ctx context.Context, ownerID string, date time.Time) ([]models.ReviewSessionSummary, error)
	ListAll(ctx context.Context, ownerID string) ([]models.ReviewSessionSummary, error)
	Exists(ctx context.Context, ownerID string) (bool, error)
	// SessionDays returns the distinct calendar days, in until's location,
	// overlapped by a session's [start, completed] window, up to and
	// including until's day. A session crossing midnight counts for every
	// day it touches, matching ListForDate. Days are returned most recent
	// first as local midnights.
	SessionDays(ctx context.Context, ownerID string, until time.Time) ([]time.Time, error)
}

// DayBounds returns the start of date's calendar day and the start of the
// next one, in date's location.
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// SpannedDays returns the local midnights, in loc, of every calendar day the
// window [start, completed] overlaps, oldest first.
func SpannedDays(start, completed time.Time, loc *time.Location) []time.Time {
	day, _ := DayBounds(start.In(loc))
	last, _ := DayBounds(completed.In(loc))
	var days []time.Time
	for !day.After(last) {
		days = append(days, day)
		day = day.AddDate(0, 0, 1)
	}
	return days
}

// DaySet accumulates the distinct days overlapped by session windows, bounded
// by the end of until's day. The zero value is not usable; see NewDaySet.
type DaySet struct {
	loc    *time.Location
	dayEnd time.Time
	seen   map[int64]time.Time
}

func NewDaySet(until time.Time) *DaySet {
	_, dayEnd := DayBounds(until)
	return &DaySet{loc: until.Location(), dayEnd: dayEnd, seen: make(map[int64]time.Time)}
}

func (d *DaySet) Add(start, completed time.Time) {
	for _, day := range SpannedDays(start, completed, d.loc) {
		if !day.Before(d.dayEnd) {
			break
		}
		d.seen[day.Unix()] = day
	}
}

// Days returns the collected days, most recent first.
func (d *DaySet) Days() []time.Time {
	days := make([]time.Time, 0, len(d.seen))
	for _, day := range d.seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
