package models

import (
	"fmt"
	"time"
)

// ReviewMode is the way a review session was played.
type ReviewMode string

const (
	ReviewModePractice ReviewMode = "practice"
	ReviewModeTarget   ReviewMode = "target"
	ReviewModeTimed    ReviewMode = "timed"
	ReviewModeStreak   ReviewMode = "streak"
)

func (m ReviewMode) Valid() bool {
	switch m {
	case ReviewModePractice, ReviewModeTarget, ReviewModeTimed, ReviewModeStreak:
		return true
	}
	return false
}

// ReviewSessionSummary records one completed study session. Summaries are
// written once at session end and never updated.
type ReviewSessionSummary struct {
	ID                      string          `json:"id"`
	OwnerID                 *string         `json:"owner_id,omitempty"`
	StartDate               time.Time       `json:"start_date"`
	CompletedDate           time.Time       `json:"completed_date"`
	Mode                    ReviewMode      `json:"review_mode"`
	TargetCorrectCount      *int            `json:"target_correct_count,omitempty"`
	SessionTimeLimitSeconds *int            `json:"session_time_limit_seconds,omitempty"`
	StreakCount             *int            `json:"streak_count,omitempty"`
	CorrectScore            int             `json:"correct_score"`
	IncorrectScore          int             `json:"incorrect_score"`
	FlashcardReviewResults  map[string]bool `json:"flashcard_review_results"`
	FlashcardCount          int             `json:"flashcard_count"`
	DeckCount               int             `json:"deck_count"`
}

// Duration is the wall-clock length of the session.
func (s ReviewSessionSummary) Duration() time.Duration {
	return s.CompletedDate.Sub(s.StartDate)
}

// Validate checks the invariants a summary must hold before it is stored.
// It returns the offending field name along with the reason.
func (s ReviewSessionSummary) Validate() (field string, err error) {
	switch {
	case s.StartDate.IsZero():
		return "start_date", fmt.Errorf("is required")
	case s.CompletedDate.IsZero():
		return "completed_date", fmt.Errorf("is required")
	case s.CompletedDate.Before(s.StartDate):
		return "completed_date", fmt.Errorf("must not be before start_date")
	case !s.Mode.Valid():
		return "review_mode", fmt.Errorf("unknown mode %q", s.Mode)
	case s.CorrectScore < 0:
		return "correct_score", fmt.Errorf("must be non-negative")
	case s.IncorrectScore < 0:
		return "incorrect_score", fmt.Errorf("must be non-negative")
	case s.FlashcardCount < 0:
		return "flashcard_count", fmt.Errorf("must be non-negative")
	case s.DeckCount < 0:
		return "deck_count", fmt.Errorf("must be non-negative")
	case s.TargetCorrectCount != nil && *s.TargetCorrectCount < 0:
		return "target_correct_count", fmt.Errorf("must be non-negative")
	case s.SessionTimeLimitSeconds != nil && *s.SessionTimeLimitSeconds < 0:
		return "session_time_limit_seconds", fmt.Errorf("must be non-negative")
	case s.StreakCount != nil && *s.StreakCount < 0:
		return "streak_count", fmt.Errorf("must be non-negative")
	}
	for id := range s.FlashcardReviewResults {
		if id == "" {
			return "flashcard_review_results", fmt.Errorf("contains an empty flashcard id")
		}
	}
	return "", nil
}
