// Package memory is an in-process backend for the repository interfaces. It
// backs unit tests and the demo mode of the CLI.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
)

// Store holds decks, flashcards and session summaries for every owner.
type Store struct {
	mu       sync.RWMutex
	decks    map[string]models.Deck
	cards    map[string]models.Flashcard
	sessions map[string]models.ReviewSessionSummary
}

func NewStore() *Store {
	return &Store{
		decks:    make(map[string]models.Deck),
		cards:    make(map[string]models.Flashcard),
		sessions: make(map[string]models.ReviewSessionSummary),
	}
}

func (s *Store) Decks() repository.DeckRepository              { return deckRepo{s} }
func (s *Store) Flashcards() repository.FlashcardRepository    { return flashcardRepo{s} }
func (s *Store) Sessions() repository.SessionSummaryRepository { return sessionRepo{s} }

func copyResults(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type deckRepo struct{ s *Store }

func (r deckRepo) Insert(_ context.Context, d models.Deck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.decks[d.ID]; ok {
		return fmt.Errorf("deck %s already exists", d.ID)
	}
	r.s.decks[d.ID] = d
	return nil
}

func (r deckRepo) Get(_ context.Context, ownerID, id string) (*models.Deck, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.decks[id]
	if !ok || d.OwnerID != ownerID {
		return nil, nil
	}
	return &d, nil
}

func (r deckRepo) List(_ context.Context, ownerID string, filter repository.DeckFilter) ([]models.Deck, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Deck
	for _, d := range r.s.decks {
		if d.OwnerID != ownerID {
			continue
		}
		if filter.ParentDeckID != nil && (d.ParentDeckID == nil || *d.ParentDeckID != *filter.ParentDeckID) {
			continue
		}
		if filter.TopLevelOnly && d.ParentDeckID != nil {
			continue
		}
		if filter.NamePrefix != "" && !strings.HasPrefix(d.Name, filter.NamePrefix) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete mirrors the sqlite schema: the deck's flashcards go with it and its
// subdecks lose their parent.
func (r deckRepo) Delete(_ context.Context, ownerID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.decks[id]
	if !ok || d.OwnerID != ownerID {
		return nil
	}
	delete(r.s.decks, id)
	for cid, c := range r.s.cards {
		if c.DeckID == id {
			delete(r.s.cards, cid)
		}
	}
	for sid, sub := range r.s.decks {
		if sub.ParentDeckID != nil && *sub.ParentDeckID == id {
			sub.ParentDeckID = nil
			r.s.decks[sid] = sub
		}
	}
	return nil
}

type flashcardRepo struct{ s *Store }

func (r flashcardRepo) Insert(_ context.Context, c models.Flashcard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cards[c.ID]; ok {
		return fmt.Errorf("flashcard %s already exists", c.ID)
	}
	if _, ok := r.s.decks[c.DeckID]; !ok {
		return fmt.Errorf("deck %s does not exist", c.DeckID)
	}
	r.s.cards[c.ID] = c
	return nil
}

func (r flashcardRepo) Get(_ context.Context, ownerID, id string) (*models.Flashcard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.cards[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return &c, nil
}

func (r flashcardRepo) ListByDeck(_ context.Context, ownerID, deckID string) ([]models.Flashcard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Flashcard
	for _, c := range r.s.cards {
		if c.OwnerID == ownerID && c.DeckID == deckID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r flashcardRepo) Delete(_ context.Context, ownerID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.cards[id]; ok && c.OwnerID == ownerID {
		delete(r.s.cards, id)
	}
	return nil
}

type sessionRepo struct{ s *Store }

func (r sessionRepo) Insert(_ context.Context, ownerID string, sum models.ReviewSessionSummary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[sum.ID]; ok {
		return fmt.Errorf("session summary %s: %w", sum.ID, repository.ErrDuplicate)
	}
	owner := ownerID
	sum.OwnerID = &owner
	sum.FlashcardReviewResults = copyResults(sum.FlashcardReviewResults)
	r.s.sessions[sum.ID] = sum
	return nil
}

func (r sessionRepo) Get(_ context.Context, ownerID, id string) (*models.ReviewSessionSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum, ok := r.s.sessions[id]
	if !ok || sum.OwnerID == nil || *sum.OwnerID != ownerID {
		return nil, nil
	}
	sum.FlashcardReviewResults = copyResults(sum.FlashcardReviewResults)
	return &sum, nil
}

func (r sessionRepo) filter(ownerID string, keep func(models.ReviewSessionSummary) bool) []models.ReviewSessionSummary {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.ReviewSessionSummary
	for _, sum := range r.s.sessions {
		if sum.OwnerID == nil || *sum.OwnerID != ownerID || !keep(sum) {
			continue
		}
		sum.FlashcardReviewResults = copyResults(sum.FlashcardReviewResults)
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r sessionRepo) ListForDate(_ context.Context, ownerID string, date time.Time) ([]models.ReviewSessionSummary, error) {
	dayStart, dayEnd := repository.DayBounds(date)
	return r.filter(ownerID, func(sum models.ReviewSessionSummary) bool {
		return sum.StartDate.Before(dayEnd) && !sum.CompletedDate.Before(dayStart)
	}), nil
}

func (r sessionRepo) ListAll(_ context.Context, ownerID string) ([]models.ReviewSessionSummary, error) {
	return r.filter(ownerID, func(models.ReviewSessionSummary) bool { return true }), nil
}

func (r sessionRepo) Exists(_ context.Context, ownerID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sum := range r.s.sessions {
		if sum.OwnerID != nil && *sum.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (r sessionRepo) SessionDays(_ context.Context, ownerID string, until time.Time) ([]time.Time, error) {
	_, dayEnd := repository.DayBounds(until)
	set := repository.NewDaySet(until)
	for _, sum := range r.filter(ownerID, func(s models.ReviewSessionSummary) bool { return s.StartDate.Before(dayEnd) }) {
		set.Add(sum.StartDate, sum.CompletedDate)
	}
	return set.Days(), nil
}
