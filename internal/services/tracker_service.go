package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vytor/flashkata/internal/errors"
	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/tracker"
)

// TrackerService exposes the tracker summary to the presentation layer
type TrackerService interface {
	LoadTrackerSummary(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error)
	HasAnySessionSummaries(ctx context.Context, ownerID string) (bool, error)
	SelectDate(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error)
	CurrentSummary(ctx context.Context, ownerID string) (*models.TrackerSummary, error)
}

type trackerService struct {
	aggregator *tracker.Aggregator
	board      *tracker.Board
}

// NewTrackerService creates a new TrackerService
func NewTrackerService(aggregator *tracker.Aggregator) TrackerService {
	return &trackerService{aggregator: aggregator, board: tracker.NewBoard(aggregator)}
}

func (s *trackerService) LoadTrackerSummary(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading tracker summary: owner_id=%s, date=%s", ownerID, date.Format("2006-01-02"))

	summary, err := s.aggregator.Summarize(ctx, ownerID, date)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return summary, nil
}

func (s *trackerService) HasAnySessionSummaries(ctx context.Context, ownerID string) (bool, error) {
	ok, err := s.aggregator.HasAnySummaries(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to check session summaries: %v", err)
		return false, errors.NewInternalError(err)
	}
	return ok, nil
}

// SelectDate recomputes the owner's on-screen summary. If a newer selection
// arrives first, this call fails with a CONFLICT error.
func (s *trackerService) SelectDate(ctx context.Context, ownerID string, date time.Time) (*models.TrackerSummary, error) {
	summary, err := s.board.Select(ctx, ownerID, date)
	if stderrors.Is(err, tracker.ErrSuperseded) {
		return nil, errors.NewConflictError("a newer date selection replaced this request", err)
	}
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return summary, nil
}

func (s *trackerService) CurrentSummary(ctx context.Context, ownerID string) (*models.TrackerSummary, error) {
	summary, ok := s.board.Current(ownerID)
	if !ok {
		return nil, errors.NewNotFoundError("tracker summary for owner", ownerID)
	}
	return summary, nil
}
