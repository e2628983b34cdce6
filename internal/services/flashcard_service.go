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

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	CreateFlashcard(ctx context.Context, ownerID, deckID, front, back string) (*models.Flashcard, error)
	GetFlashcard(ctx context.Context, ownerID, id string) (*models.Flashcard, error)
	ListFlashcards(ctx context.Context, ownerID, deckID string) ([]models.Flashcard, error)
	DeleteFlashcard(ctx context.Context, ownerID, id string) error
}

type flashcardService struct {
	cardRepo repository.FlashcardRepository
	deckRepo repository.DeckRepository
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(cardRepo repository.FlashcardRepository, deckRepo repository.DeckRepository) FlashcardService {
	return &flashcardService{cardRepo: cardRepo, deckRepo: deckRepo}
}

func (s *flashcardService) requireDeck(ctx context.Context, ownerID, deckID string) error {
	deck, err := s.deckRepo.Get(ctx, ownerID, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	return nil
}

func (s *flashcardService) CreateFlashcard(ctx context.Context, ownerID, deckID, front, back string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	front, back = strings.TrimSpace(front), strings.TrimSpace(back)
	if front == "" {
		return nil, errors.NewValidationError("front", "is required")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "is required")
	}
	if err := s.requireDeck(ctx, ownerID, deckID); err != nil {
		return nil, err
	}

	card := models.Flashcard{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		DeckID:    deckID,
		Front:     front,
		Back:      back,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cardRepo.Insert(ctx, card); err != nil {
		log.Error("failed to create flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("flashcard created: id=%s, deck_id=%s", card.ID, deckID)
	return &card, nil
}

func (s *flashcardService) GetFlashcard(ctx context.Context, ownerID, id string) (*models.Flashcard, error) {
	card, err := s.cardRepo.Get(ctx, ownerID, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) ListFlashcards(ctx context.Context, ownerID, deckID string) ([]models.Flashcard, error) {
	if err := s.requireDeck(ctx, ownerID, deckID); err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.ListByDeck(ctx, ownerID, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetFlashcard(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(ctx, ownerID, id); err != nil {
		logger.FromContext(ctx).Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
