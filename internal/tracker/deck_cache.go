package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/flashkata/internal/models"
	"golang.org/x/sync/singleflight"
)

// deckCache memoizes deck lookups for the lifetime of one aggregation so that
// cards sharing a deck trigger a single fetch. Errors are not cached.
//
// The shared fetch runs under the aggregation's context with its own timeout,
// never under the context of whichever card asked first, so one card's
// expiring budget cannot fail every waiter.
type deckCache struct {
	ctx     context.Context
	timeout time.Duration
	lookup  DeckLookup
	group   singleflight.Group
	mu      sync.Mutex
	decks   map[string]*models.Deck
}

func newDeckCache(ctx context.Context, lookup DeckLookup, timeout time.Duration) *deckCache {
	return &deckCache{ctx: ctx, timeout: timeout, lookup: lookup, decks: make(map[string]*models.Deck)}
}

func (c *deckCache) get(ownerID, id string) (*models.Deck, error) {
	c.mu.Lock()
	deck, ok := c.decks[id]
	c.mu.Unlock()
	if ok {
		return deck, nil
	}

	v, err, _ := c.group.Do(id, func() (any, error) {
		ctx := c.ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		d, err := c.lookup.Get(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.decks[id] = d
		c.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Deck), nil
}
