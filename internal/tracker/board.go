package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
)

// ErrSuperseded is returned to a Select call whose result was discarded
// because a newer Select for the same owner started after it.
var ErrSuperseded = errors.New("tracker: superseded by a newer request")

type Summarizer interface {
	Summarize(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error)
}

// Board keeps the summary currently on screen for each owner. Selecting a new
// date cancels the owner's in-flight computation; only the newest request may
// publish its result.
type Board struct {
	summarizer Summarizer

	mu     sync.Mutex
	owners map[string]*boardEntry
}

type boardEntry struct {
	generation uint64
	cancel     context.CancelFunc
	current    *models.TrackerSummary
}

func NewBoard(s Summarizer) *Board {
	return &Board{summarizer: s, owners: make(map[string]*boardEntry)}
}

func (b *Board) entry(ownerID string) *boardEntry {
	e, ok := b.owners[ownerID]
	if !ok {
		e = &boardEntry{}
		b.owners[ownerID] = e
	}
	return e
}

// Select computes the summary for date and publishes it as the owner's
// current summary. A failed computation clears the current summary.
func (b *Board) Select(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("board")

	b.mu.Lock()
	e := b.entry(ownerID)
	if e.cancel != nil {
		log.Debug("cancelling in-flight summary for owner %s", ownerID)
		e.cancel()
	}
	e.generation++
	gen := e.generation
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	b.mu.Unlock()
	defer cancel()

	summary, err := b.summarizer.Summarize(runCtx, ownerID, date)

	b.mu.Lock()
	defer b.mu.Unlock()
	if e.generation != gen {
		log.Debug("discarding stale summary for owner %s", ownerID)
		return nil, ErrSuperseded
	}
	e.cancel = nil
	if err != nil {
		// Nothing published and nothing in flight: forget the owner.
		delete(b.owners, ownerID)
		return nil, err
	}
	e.current = summary
	return summary, nil
}

// Current returns the last published summary for the owner.
func (b *Board) Current(ownerID string) (*models.TrackerSummary, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.owners[ownerID]
	if !ok || e.current == nil {
		return nil, false
	}
	return e.current, true
}
