package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashkata/internal/models"
)

// MockSessionSummaryRepository is a mock implementation of repository.SessionSummaryRepository
type MockSessionSummaryRepository struct {
	mock.Mock
}

func (m *MockSessionSummaryRepository) Insert(ctx context.Context, ownerID string, summary models.ReviewSessionSummary) error {
	args := m.Called(ctx, ownerID, summary)
	return args.Error(0)
}

func (m *MockSessionSummaryRepository) Get(ctx context.Context, ownerID, id string) (*models.ReviewSessionSummary, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewSessionSummary), args.Error(1)
}

func (m *MockSessionSummaryRepository) ListForDate(ctx context.Context, ownerID string, date time.Time) ([]models.ReviewSessionSummary, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewSessionSummary), args.Error(1)
}

func (m *MockSessionSummaryRepository) ListAll(ctx context.Context, ownerID string) ([]models.ReviewSessionSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewSessionSummary), args.Error(1)
}

func (m *MockSessionSummaryRepository) Exists(ctx context.Context, ownerID string) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionSummaryRepository) SessionDays(ctx context.Context, ownerID string, until time.Time) ([]time.Time, error) {
	args := m.Called(ctx, ownerID, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}
