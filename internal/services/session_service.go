package services

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/vytor/flashkata/internal/errors"
	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
)

// SessionService records and lists completed review sessions
type SessionService interface {
	RecordSession(ctx context.Context, ownerID string, summary models.ReviewSessionSummary) (*models.ReviewSessionSummary, error)
	GetSession(ctx context.Context, ownerID, id string) (*models.ReviewSessionSummary, error)
	ListSessions(ctx context.Context, ownerID string) ([]models.ReviewSessionSummary, error)
}

type sessionService struct {
	sessionRepo repository.SessionSummaryRepository
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo repository.SessionSummaryRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

func (s *sessionService) RecordSession(ctx context.Context, ownerID string, summary models.ReviewSessionSummary) (*models.ReviewSessionSummary, error) {
	log := logger.FromContext(ctx)

	if field, err := summary.Validate(); err != nil {
		return nil, errors.NewValidationError(field, err.Error())
	}
	if summary.ID == "" {
		summary.ID = uuid.NewString()
	}
	if summary.FlashcardReviewResults == nil {
		summary.FlashcardReviewResults = map[string]bool{}
	}
	owner := ownerID
	summary.OwnerID = &owner

	// IDs are unique across owners; the store is the only reliable judge.
	if err := s.sessionRepo.Insert(ctx, ownerID, summary); stderrors.Is(err, repository.ErrDuplicate) {
		return nil, errors.NewConflictError("session summary "+summary.ID+" already recorded", err)
	} else if err != nil {
		log.Error("failed to record session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("session recorded: id=%s, mode=%s, cards=%d, duration=%s",
		summary.ID, summary.Mode, len(summary.FlashcardReviewResults), summary.Duration())
	return &summary, nil
}

func (s *sessionService) GetSession(ctx context.Context, ownerID, id string) (*models.ReviewSessionSummary, error) {
	summary, err := s.sessionRepo.Get(ctx, ownerID, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if summary == nil {
		return nil, errors.NewNotFoundError("session", id)
	}
	return summary, nil
}

func (s *sessionService) ListSessions(ctx context.Context, ownerID string) ([]models.ReviewSessionSummary, error) {
	summaries, err := s.sessionRepo.ListAll(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return summaries, nil
}
