package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Insert(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: id=%s, deck_id=%s", c.ID, c.DeckID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO flashcards (id, owner_id, deck_id, front, back, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?)
`, c.ID, c.OwnerID, c.DeckID, c.Front, c.Back, toMillis(c.CreatedAt))
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) Get(ctx context.Context, ownerID, id string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	var c models.Flashcard
	var createdAt int64
	err := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, deck_id, front, back, created_at_ms
FROM flashcards
WHERE id = ? AND owner_id = ?
`, id, ownerID).Scan(&c.ID, &c.OwnerID, &c.DeckID, &c.Front, &c.Back, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	c.CreatedAt = fromMillis(createdAt)
	return &c, nil
}

func (r *flashcardRepository) ListByDeck(ctx context.Context, ownerID, deckID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: deck_id=%s", deckID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, deck_id, front, back, created_at_ms
FROM flashcards
WHERE owner_id = ? AND deck_id = ?
ORDER BY created_at_ms, id
`, ownerID, deckID)
	if err != nil {
		log.Error("failed to query flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.DeckID, &c.Front, &c.Back, &createdAt); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		c.CreatedAt = fromMillis(createdAt)
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, rows.Err()
}

func (r *flashcardRepository) Delete(ctx context.Context, ownerID, id string) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
	}
	return err
}
