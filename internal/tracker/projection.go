package tracker

import (
	"time"

	"github.com/vytor/flashkata/internal/models"
)

// ChartView is a ChartItem flattened for display.
type ChartView struct {
	DeckID         string   `json:"deck_id"`
	DeckName       string   `json:"deck_name"`
	IsDeleted      bool     `json:"is_deleted"`
	IsSubdeck      bool     `json:"is_subdeck"`
	Color          string   `json:"color"`
	FlashcardCount int      `json:"flashcard_count"`
	CorrectCount   int      `json:"correct_count"`
	IncorrectCount int      `json:"incorrect_count"`
	PercentCorrect *float64 `json:"percent_correct,omitempty"`
}

// SummaryView is the display form of a TrackerSummary.
type SummaryView struct {
	Date               string      `json:"date"`
	CardsLearned       int         `json:"cards_learned"`
	Streak             int         `json:"streak"`
	TimeStudiedSeconds int64       `json:"time_studied_seconds"`
	TimeStudied        string      `json:"time_studied"`
	Charts             []ChartView `json:"charts"`
}

func ProjectItem(item models.ChartItem) ChartView {
	correct := item.CorrectCount()
	v := ChartView{
		DeckID:         item.Deck.ID,
		DeckName:       item.Deck.Name,
		IsDeleted:      item.IsDeleted(),
		IsSubdeck:      item.Deck.IsSubdeck(),
		Color:          item.PrimaryColor(),
		FlashcardCount: item.FlashcardCount(),
		CorrectCount:   correct,
		IncorrectCount: item.FlashcardCount() - correct,
	}
	if pct, ok := item.PercentCorrect(); ok {
		v.PercentCorrect = &pct
	}
	return v
}

func Project(items []models.ChartItem) []ChartView {
	views := make([]ChartView, 0, len(items))
	for _, item := range items {
		views = append(views, ProjectItem(item))
	}
	return views
}

func ProjectSummary(s *models.TrackerSummary) SummaryView {
	return SummaryView{
		Date:               s.Date.Format("2006-01-02"),
		CardsLearned:       s.CardsLearned,
		Streak:             s.Streak,
		TimeStudiedSeconds: int64(s.TimeStudied / time.Second),
		TimeStudied:        s.TimeStudiedDisplay,
		Charts:             Project(s.ChartItems),
	}
}
