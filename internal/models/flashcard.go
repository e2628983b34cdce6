package models

import "time"

type Flashcard struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	DeckID    string    `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}
