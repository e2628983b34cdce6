package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashkata/internal/models"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Insert(ctx context.Context, flashcard models.Flashcard) error {
	args := m.Called(ctx, flashcard)
	return args.Error(0)
}

func (m *MockFlashcardRepository) Get(ctx context.Context, ownerID, id string) (*models.Flashcard, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) ListByDeck(ctx context.Context, ownerID, deckID string) ([]models.Flashcard, error) {
	args := m.Called(ctx, ownerID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
