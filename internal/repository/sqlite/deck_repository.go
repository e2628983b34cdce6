package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

var deckColumns = []string{"id", "owner_id", "name", "theme", "parent_deck_id", "created_at_ms"}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (models.Deck, error) {
	var d models.Deck
	var theme string
	var parent sql.NullString
	var createdAt int64
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Name, &theme, &parent, &createdAt); err != nil {
		return d, err
	}
	t, ok := models.ThemeByName(theme)
	if !ok {
		t, _ = models.ThemeByName(models.DefaultThemeName)
	}
	d.Theme = t
	if parent.Valid {
		p := parent.String
		d.ParentDeckID = &p
	}
	d.CreatedAt = fromMillis(createdAt)
	return d, nil
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s, name=%s", d.ID, d.Name)

	var parent sql.NullString
	if d.ParentDeckID != nil {
		parent = sql.NullString{String: *d.ParentDeckID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO decks (id, owner_id, name, theme, parent_deck_id, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?)
`, d.ID, d.OwnerID, d.Name, d.Theme.Name, parent, toMillis(d.CreatedAt))
	if err != nil {
		log.Error("failed to insert deck: %v", err)
	}
	return err
}

func (r *deckRepository) Get(ctx context.Context, ownerID, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	query, args, err := sqlBuilder.Select(deckColumns...).
		From("decks").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	d, err := scanDeck(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context, ownerID string, filter repository.DeckFilter) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: owner_id=%s, top_level_only=%t", ownerID, filter.TopLevelOnly)

	query := sqlBuilder.Select(deckColumns...).
		From("decks").
		Where(squirrel.Eq{"owner_id": ownerID})

	if filter.ParentDeckID != nil {
		query = query.Where(squirrel.Eq{"parent_deck_id": *filter.ParentDeckID})
	}
	if filter.TopLevelOnly {
		query = query.Where(squirrel.Eq{"parent_deck_id": nil})
	}
	if filter.NamePrefix != "" {
		query = query.Where(squirrel.Like{"name": filter.NamePrefix + "%"})
	}
	query = query.OrderBy("name ASC", "id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Delete(ctx context.Context, ownerID, id string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
	}
	return err
}
