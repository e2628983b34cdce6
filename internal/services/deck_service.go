package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashkata/internal/errors"
	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	CreateDeck(ctx context.Context, ownerID, name, theme string, parentID *string) (*models.Deck, error)
	GetDeck(ctx context.Context, ownerID, id string) (*models.Deck, error)
	ListDecks(ctx context.Context, ownerID string, filter repository.DeckFilter) ([]models.Deck, error)
	DeleteDeck(ctx context.Context, ownerID, id string) error
}

type deckService struct {
	deckRepo repository.DeckRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository) DeckService {
	return &deckService{deckRepo: deckRepo}
}

func (s *deckService) CreateDeck(ctx context.Context, ownerID, name, theme string, parentID *string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "is required")
	}
	if theme == "" {
		theme = models.DefaultThemeName
	}
	t, ok := models.ThemeByName(theme)
	if !ok {
		return nil, errors.NewValidationError("theme", "must be one of "+strings.Join(models.ThemeNames(), ", "))
	}

	if parentID != nil {
		parent, err := s.deckRepo.Get(ctx, ownerID, *parentID)
		if err != nil {
			log.Error("failed to load parent deck: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if parent == nil {
			return nil, errors.NewValidationError("parent_deck_id", "deck does not exist")
		}
	}

	deck := models.Deck{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Name:         name,
		Theme:        t,
		ParentDeckID: parentID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.deckRepo.Insert(ctx, deck); err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck created: id=%s, name=%s", deck.ID, deck.Name)
	return &deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, ownerID, id string) (*models.Deck, error) {
	deck, err := s.deckRepo.Get(ctx, ownerID, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, ownerID string, filter repository.DeckFilter) ([]models.Deck, error) {
	decks, err := s.deckRepo.List(ctx, ownerID, filter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

// DeleteDeck removes the deck and its flashcards. Review outcomes recorded
// for those cards are kept and later show up in the Deleted chart bucket.
func (s *deckService) DeleteDeck(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetDeck(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.deckRepo.Delete(ctx, ownerID, id); err != nil {
		logger.FromContext(ctx).Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("deck deleted: id=%s", id)
	return nil
}
