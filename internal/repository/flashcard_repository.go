package repository

import (
	"context"

	"github.com/vytor/flashkata/internal/models"
)

// FlashcardRepository handles flashcard data access. Every call is scoped to
// an owner; a card owned by someone else is reported as missing.
type FlashcardRepository interface {
	Insert(ctx context.Context, flashcard models.Flashcard) error
	// Get returns (nil, nil) when the flashcard does not exist.
	Get(ctx context.Context, ownerID, id string) (*models.Flashcard, error)
	ListByDeck(ctx context.Context, ownerID, deckID string) ([]models.Flashcard, error)
	Delete(ctx context.Context, ownerID, id string) error
}
