package repository

import (
	"context"

	"github.com/vytor/flashkata/internal/models"
)

// DeckFilter narrows List results. Zero values mean "any".
type DeckFilter struct {
	ParentDeckID *string
	TopLevelOnly bool
	NamePrefix   string
}

// DeckRepository handles deck data access.
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) error
	// Get returns (nil, nil) when the deck does not exist.
	Get(ctx context.Context, ownerID, id string) (*models.Deck, error)
	List(ctx context.Context, ownerID string, filter DeckFilter) ([]models.Deck, error)
	Delete(ctx context.Context, ownerID, id string) error
}
