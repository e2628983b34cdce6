package models

import "time"

// TrackerSummary is the aggregate shown for one selected day.
type TrackerSummary struct {
	Date               time.Time     `json:"date"`
	CardsLearned       int           `json:"cards_learned"`
	Streak             int           `json:"streak"`
	TimeStudied        time.Duration `json:"time_studied"`
	TimeStudiedDisplay string        `json:"time_studied_display"`
	ChartItems         []ChartItem   `json:"chart_items"`
}
