// Package tracker turns stored review sessions into the tracker summary: cards
// learned, streak, time studied and a per-deck chart.
package tracker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
	"golang.org/x/sync/errgroup"
)

// SummarySource is the read side of the session summary store.
type SummarySource interface {
	ListForDate(ctx context.Context, ownerID string, date time.Time) ([]models.ReviewSessionSummary, error)
	Exists(ctx context.Context, ownerID string) (bool, error)
}

// FlashcardLookup resolves a reviewed card. A missing card is (nil, nil).
type FlashcardLookup interface {
	Get(ctx context.Context, ownerID, id string) (*models.Flashcard, error)
}

// DeckLookup resolves a card's deck. A missing deck is (nil, nil).
type DeckLookup interface {
	Get(ctx context.Context, ownerID, id string) (*models.Deck, error)
}

type StreakCalculator interface {
	Calculate(ctx context.Context, ownerID string, ref time.Time) (int, error)
}

// Recorder receives aggregation measurements.
type Recorder interface {
	SummaryComputed(ctx context.Context, elapsed time.Duration, buckets, orphaned int)
	LookupFailed(ctx context.Context, reason string)
}

type noopRecorder struct{}

func (noopRecorder) SummaryComputed(context.Context, time.Duration, int, int) {}
func (noopRecorder) LookupFailed(context.Context, string)                     {}

type Options struct {
	// Concurrency bounds the number of in-flight card/deck lookups.
	Concurrency int
	// LookupTimeout bounds each store lookup: one per card, one per shared
	// deck fetch. Zero means no per-lookup timeout beyond the caller's
	// context.
	LookupTimeout time.Duration
	// Location defines calendar days. Nil means time.Local.
	Location *time.Location
	Recorder Recorder
}

type Aggregator struct {
	summaries SummarySource
	cards     FlashcardLookup
	decks     DeckLookup
	streaks   StreakCalculator
	opts      Options
}

func NewAggregator(summaries SummarySource, cards FlashcardLookup, decks DeckLookup, streaks StreakCalculator, opts Options) *Aggregator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Recorder == nil {
		opts.Recorder = noopRecorder{}
	}
	return &Aggregator{summaries: summaries, cards: cards, decks: decks, streaks: streaks, opts: opts}
}

// CardsLearnedCount counts the distinct flashcards with an outcome in any of
// the summaries.
func CardsLearnedCount(summaries []models.ReviewSessionSummary) int {
	seen := make(map[string]struct{})
	for _, s := range summaries {
		for id := range s.FlashcardReviewResults {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

// TimeStudied sums the length of every session.
func TimeStudied(summaries []models.ReviewSessionSummary) time.Duration {
	var total time.Duration
	for _, s := range summaries {
		total += s.Duration()
	}
	return total
}

// FormatTimeStudied renders d as H:MM. Any non-zero time under a minute shows
// as "0:01" so that a day with a session never reads "0:00".
func FormatTimeStudied(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}
	if d < time.Minute {
		return "0:01"
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/3600, (secs%3600)/60)
}

// MergeOutcomes folds every summary's per-card outcomes into one mapping. A
// card counts as correct if it was answered correctly in any session.
func MergeOutcomes(summaries []models.ReviewSessionSummary) map[string]bool {
	merged := make(map[string]bool)
	for _, s := range summaries {
		for id, ok := range s.FlashcardReviewResults {
			merged[id] = merged[id] || ok
		}
	}
	return merged
}

// DeckBuckets groups the merged outcomes of summaries by the deck that owns
// each card. Cards whose flashcard or deck cannot be resolved land in a
// trailing "Deleted" item instead of failing the call. Only cancellation of
// ctx is returned as an error.
func (a *Aggregator) DeckBuckets(ctx context.Context, ownerID string, summaries []models.ReviewSessionSummary) ([]models.ChartItem, error) {
	log := logger.FromContext(ctx).WithPrefix("tracker")

	merged := MergeOutcomes(summaries)
	if len(merged) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// One slot per card; goroutines never share a slot.
	resolved := make([]*models.Deck, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	cache := newDeckCache(gctx, a.decks, a.opts.LookupTimeout)
	g.SetLimit(a.opts.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			deck, reason, err := a.resolveDeck(gctx, cache, ownerID, id)
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			if deck == nil {
				log.Warn("flashcard %s moved to deleted bucket: %s", id, reason)
				a.opts.Recorder.LookupFailed(ctx, reason)
				return nil
			}
			resolved[i] = deck
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return groupByDeck(ids, merged, resolved), nil
}

// resolveDeck returns the deck owning card id, or a nil deck and the reason it
// could not be resolved.
func (a *Aggregator) resolveDeck(ctx context.Context, cache *deckCache, ownerID, id string) (*models.Deck, string, error) {
	card, err := a.lookupCard(ctx, ownerID, id)
	if err != nil {
		return nil, "flashcard_lookup_error", err
	}
	if card == nil {
		return nil, "flashcard_not_found", nil
	}
	deck, err := cache.get(ownerID, card.DeckID)
	if err != nil {
		return nil, "deck_lookup_error", err
	}
	if deck == nil {
		return nil, "deck_not_found", nil
	}
	return deck, "", nil
}

func (a *Aggregator) lookupCard(ctx context.Context, ownerID, id string) (*models.Flashcard, error) {
	if a.opts.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.LookupTimeout)
		defer cancel()
	}
	return a.cards.Get(ctx, ownerID, id)
}

func groupByDeck(ids []string, merged map[string]bool, resolved []*models.Deck) []models.ChartItem {
	buckets := make(map[string]*models.ChartItem)
	orphaned := make(map[string]bool)
	for i, id := range ids {
		deck := resolved[i]
		if deck == nil {
			orphaned[id] = merged[id]
			continue
		}
		item, ok := buckets[deck.ID]
		if !ok {
			item = &models.ChartItem{Deck: *deck, FlashcardResults: make(map[string]bool)}
			buckets[deck.ID] = item
		}
		item.FlashcardResults[id] = merged[id]
	}

	items := make([]models.ChartItem, 0, len(buckets)+1)
	for _, item := range buckets {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Deck.Name != items[j].Deck.Name {
			return items[i].Deck.Name < items[j].Deck.Name
		}
		return items[i].Deck.ID < items[j].Deck.ID
	})
	if len(orphaned) > 0 {
		items = append(items, models.ChartItem{Deck: models.DeletedDeck(), FlashcardResults: orphaned})
	}
	return items
}

// Summarize computes the tracker summary for the calendar day of date. A
// failure to load sessions or the streak aborts the whole computation.
func (a *Aggregator) Summarize(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("tracker").WithField("owner_id", ownerID)
	start := time.Now()
	date = date.In(a.opts.Location)
	day, _ := repository.DayBounds(date)
	log.Debug("summarizing %s", day.Format("2006-01-02"))

	summaries, err := a.summaries.ListForDate(ctx, ownerID, date)
	if err != nil {
		log.Error("failed to fetch session summaries: %v", err)
		return nil, fmt.Errorf("fetch session summaries: %w", err)
	}

	streak, err := a.streaks.Calculate(ctx, ownerID, date)
	if err != nil {
		log.Error("failed to calculate streak: %v", err)
		return nil, fmt.Errorf("calculate streak: %w", err)
	}

	items, err := a.DeckBuckets(ctx, ownerID, summaries)
	if err != nil {
		return nil, err
	}

	studied := TimeStudied(summaries)
	summary := &models.TrackerSummary{
		Date:               day,
		CardsLearned:       CardsLearnedCount(summaries),
		Streak:             streak,
		TimeStudied:        studied,
		TimeStudiedDisplay: FormatTimeStudied(studied),
		ChartItems:         items,
	}

	orphaned := 0
	if n := len(items); n > 0 && items[n-1].IsDeleted() {
		orphaned = items[n-1].FlashcardCount()
	}
	a.opts.Recorder.SummaryComputed(ctx, time.Since(start), len(items), orphaned)
	log.Debug("summary ready: sessions=%d cards=%d streak=%d time=%s buckets=%d",
		len(summaries), summary.CardsLearned, streak, summary.TimeStudiedDisplay, len(items))
	return summary, nil
}

// HasAnySummaries reports whether the owner has ever completed a session.
func (a *Aggregator) HasAnySummaries(ctx context.Context, ownerID string) (bool, error) {
	ok, err := a.summaries.Exists(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("check session summaries: %w", err)
	}
	return ok, nil
}
