package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStreakCalculator is a mock implementation of tracker.StreakCalculator
type MockStreakCalculator struct {
	mock.Mock
}

func (m *MockStreakCalculator) Calculate(ctx context.Context, ownerID string, ref time.Time) (int, error) {
	args := m.Called(ctx, ownerID, ref)
	return args.Int(0), args.Error(1)
}
