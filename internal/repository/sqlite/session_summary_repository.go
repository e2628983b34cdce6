package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
)

type sessionSummaryRepository struct {
	db *sql.DB
}

// NewSessionSummaryRepository creates a new SessionSummaryRepository implementation
func NewSessionSummaryRepository(db *sql.DB) repository.SessionSummaryRepository {
	return &sessionSummaryRepository{db: db}
}

var sessionColumns = []string{
	"id", "owner_id", "start_at_ms", "completed_at_ms", "review_mode",
	"target_correct_count", "session_time_limit_seconds", "streak_count",
	"correct_score", "incorrect_score", "flashcard_count", "deck_count",
}

func scanSession(row rowScanner) (models.ReviewSessionSummary, error) {
	var s models.ReviewSessionSummary
	var owner string
	var start, completed int64
	var mode string
	var target, limit, streak sql.NullInt64
	err := row.Scan(&s.ID, &owner, &start, &completed, &mode, &target, &limit, &streak,
		&s.CorrectScore, &s.IncorrectScore, &s.FlashcardCount, &s.DeckCount)
	if err != nil {
		return s, err
	}
	s.OwnerID = &owner
	s.StartDate = fromMillis(start)
	s.CompletedDate = fromMillis(completed)
	s.Mode = models.ReviewMode(mode)
	s.TargetCorrectCount = intPtr(target)
	s.SessionTimeLimitSeconds = intPtr(limit)
	s.StreakCount = intPtr(streak)
	s.FlashcardReviewResults = map[string]bool{}
	return s, nil
}

func (r *sessionSummaryRepository) Insert(ctx context.Context, ownerID string, s models.ReviewSessionSummary) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session summary: id=%s, mode=%s, results=%d", s.ID, s.Mode, len(s.FlashcardReviewResults))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO review_sessions (id, owner_id, start_at_ms, completed_at_ms, review_mode,
    target_correct_count, session_time_limit_seconds, streak_count,
    correct_score, incorrect_score, flashcard_count, deck_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.ID, ownerID, toMillis(s.StartDate), toMillis(s.CompletedDate), string(s.Mode),
			nullInt(s.TargetCorrectCount), nullInt(s.SessionTimeLimitSeconds), nullInt(s.StreakCount),
			s.CorrectScore, s.IncorrectScore, s.FlashcardCount, s.DeckCount)
		if isConstraintDuplicate(err) {
			log.Warn("session summary %s already exists", s.ID)
			return fmt.Errorf("session summary %s: %w", s.ID, repository.ErrDuplicate)
		}
		if err != nil {
			log.Error("failed to insert session summary: %v", err)
			return err
		}

		if len(s.FlashcardReviewResults) == 0 {
			return nil
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO review_session_results (session_id, flashcard_id, correct) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for cardID, correct := range s.FlashcardReviewResults {
			if _, err := stmt.ExecContext(ctx, s.ID, cardID, correct); err != nil {
				log.Error("failed to insert review result: flashcard_id=%s: %v", cardID, err)
				return err
			}
		}
		return nil
	})
}

func (r *sessionSummaryRepository) Get(ctx context.Context, ownerID, id string) (*models.ReviewSessionSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	query, args, err := sqlBuilder.Select(sessionColumns...).
		From("review_sessions").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	s, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session summary not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session summary: %v", err)
		return nil, err
	}

	summaries := []models.ReviewSessionSummary{s}
	if err := r.attachResults(ctx, summaries); err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

func (r *sessionSummaryRepository) ListForDate(ctx context.Context, ownerID string, date time.Time) ([]models.ReviewSessionSummary, error) {
	dayStart, dayEnd := repository.DayBounds(date)
	logger.FromContext(ctx).WithPrefix("session_repo").
		Debug("listing session summaries: owner_id=%s, day=%s", ownerID, dayStart.Format("2006-01-02"))

	return r.list(ctx, sqlBuilder.Select(sessionColumns...).
		From("review_sessions").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Lt{"start_at_ms": toMillis(dayEnd)}).
		Where(squirrel.GtOrEq{"completed_at_ms": toMillis(dayStart)}))
}

func (r *sessionSummaryRepository) ListAll(ctx context.Context, ownerID string) ([]models.ReviewSessionSummary, error) {
	logger.FromContext(ctx).WithPrefix("session_repo").Debug("listing all session summaries: owner_id=%s", ownerID)

	return r.list(ctx, sqlBuilder.Select(sessionColumns...).
		From("review_sessions").
		Where(squirrel.Eq{"owner_id": ownerID}))
}

func (r *sessionSummaryRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.ReviewSessionSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	sqlStr, args, err := query.OrderBy("start_at_ms ASC", "id ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query session summaries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var summaries []models.ReviewSessionSummary
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session summary row: %v", err)
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachResults(ctx, summaries); err != nil {
		return nil, err
	}
	log.Debug("found %d session summaries", len(summaries))
	return summaries, nil
}

// attachResults loads the per-card outcomes for every summary in one query.
func (r *sessionSummaryRepository) attachResults(ctx context.Context, summaries []models.ReviewSessionSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	byID := make(map[string]*models.ReviewSessionSummary, len(summaries))
	ids := make([]string, 0, len(summaries))
	for i := range summaries {
		byID[summaries[i].ID] = &summaries[i]
		ids = append(ids, summaries[i].ID)
	}

	sqlStr, args, err := sqlBuilder.Select("session_id", "flashcard_id", "correct").
		From("review_session_results").
		Where(squirrel.Eq{"session_id": ids}).
		ToSql()
	if err != nil {
		return err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("query review results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID, cardID string
		var correct bool
		if err := rows.Scan(&sessionID, &cardID, &correct); err != nil {
			return fmt.Errorf("scan review result: %w", err)
		}
		if s, ok := byID[sessionID]; ok {
			s.FlashcardReviewResults[cardID] = correct
		}
	}
	return rows.Err()
}

func (r *sessionSummaryRepository) Exists(ctx context.Context, ownerID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM review_sessions WHERE owner_id = ? LIMIT 1`, ownerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("session_repo").Error("failed to check session summaries: %v", err)
		return false, err
	}
	return true, nil
}

func (r *sessionSummaryRepository) SessionDays(ctx context.Context, ownerID string, until time.Time) ([]time.Time, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	_, dayEnd := repository.DayBounds(until)

	rows, err := r.db.QueryContext(ctx, `
SELECT start_at_ms, completed_at_ms
FROM review_sessions
WHERE owner_id = ? AND start_at_ms < ?
`, ownerID, toMillis(dayEnd))
	if err != nil {
		log.Error("failed to query session days: %v", err)
		return nil, err
	}
	defer rows.Close()

	set := repository.NewDaySet(until)
	for rows.Next() {
		var start, completed int64
		if err := rows.Scan(&start, &completed); err != nil {
			return nil, err
		}
		set.Add(fromMillis(start), fromMillis(completed))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set.Days(), nil
}

func isConstraintDuplicate(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique
}
