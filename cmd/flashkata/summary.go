package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/flashkata/internal/cli"
	"github.com/vytor/flashkata/internal/db"
	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
	"github.com/vytor/flashkata/internal/repository/memory"
	"github.com/vytor/flashkata/internal/repository/sqlite"
	"github.com/vytor/flashkata/internal/streak"
	"github.com/vytor/flashkata/internal/tracker"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the tracker summary for one day",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().String("owner", "", "Owner id to summarize")
	summaryCmd.Flags().String("date", "", "Day to summarize as YYYY-MM-DD (default today)")
	summaryCmd.Flags().Bool("demo", false, "Summarize built-in sample data instead of the database")
}

type stores struct {
	decks    repository.DeckRepository
	cards    repository.FlashcardRepository
	sessions repository.SessionSummaryRepository
}

func runSummary(cmd *cobra.Command, _ []string) error {
	owner, _ := cmd.Flags().GetString("owner")
	rawDate, _ := cmd.Flags().GetString("date")
	demo, _ := cmd.Flags().GetBool("demo")

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	date := time.Now().In(loc)
	if rawDate != "" {
		if date, err = time.ParseInLocation("2006-01-02", rawDate, loc); err != nil {
			return fmt.Errorf("--date must be formatted as YYYY-MM-DD")
		}
	}

	ctx := logger.NewContext(cmd.Context(), logger.Default())
	var st stores
	if demo {
		if owner == "" {
			owner = "demo"
		}
		if st, err = demoStores(ctx, owner, date); err != nil {
			return err
		}
	} else {
		if owner == "" {
			return fmt.Errorf("--owner is required")
		}
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()
		st = stores{
			decks:    sqlite.NewDeckRepository(database.DB),
			cards:    sqlite.NewFlashcardRepository(database.DB),
			sessions: sqlite.NewSessionSummaryRepository(database.DB),
		}
	}

	aggregator := tracker.NewAggregator(st.sessions, st.cards, st.decks, streak.NewCalculator(st.sessions, loc), tracker.Options{
		Concurrency:   cfg.LookupConcurrency,
		LookupTimeout: cfg.LookupTimeout,
		Location:      loc,
	})
	summary, err := aggregator.Summarize(ctx, owner, date)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderSummary(owner, tracker.ProjectSummary(summary)))
	return nil
}

// demoStores seeds an in-memory store with two decks and a three-day streak
// ending on date. One reviewed card has since been deleted.
func demoStores(ctx context.Context, owner string, date time.Time) (stores, error) {
	store := memory.NewStore()
	now := time.Now().UTC()
	blue, _ := models.ThemeByName("blue")
	orange, _ := models.ThemeByName("orange")
	lang := "languages"

	decks := []models.Deck{
		{ID: lang, OwnerID: owner, Name: "Languages", Theme: blue, CreatedAt: now},
		{ID: "spanish", OwnerID: owner, Name: "Spanish", Theme: blue, ParentDeckID: &lang, CreatedAt: now},
		{ID: "algorithms", OwnerID: owner, Name: "Algorithms", Theme: orange, CreatedAt: now},
	}
	for _, d := range decks {
		if err := store.Decks().Insert(ctx, d); err != nil {
			return stores{}, err
		}
	}
	cards := map[string]string{
		"hola": "spanish", "gracias": "spanish", "adios": "spanish",
		"bfs": "algorithms", "dijkstra": "algorithms",
	}
	for id, deckID := range cards {
		if err := store.Flashcards().Insert(ctx, models.Flashcard{ID: id, OwnerID: owner, DeckID: deckID, Front: id, Back: id, CreatedAt: now}); err != nil {
			return stores{}, err
		}
	}

	day, _ := repository.DayBounds(date)
	sessions := []models.ReviewSessionSummary{
		demoSession("demo-1", day.AddDate(0, 0, -2).Add(19*time.Hour), 12*time.Minute, map[string]bool{"hola": true}),
		demoSession("demo-2", day.AddDate(0, 0, -1).Add(8*time.Hour), 25*time.Minute, map[string]bool{"bfs": false}),
		demoSession("demo-3", day.Add(9*time.Hour), 18*time.Minute, map[string]bool{"hola": true, "gracias": false, "bfs": true, "retired-card": true}),
		demoSession("demo-4", day.Add(20*time.Hour), 7*time.Minute, map[string]bool{"gracias": true, "adios": false, "dijkstra": false}),
	}
	for _, s := range sessions {
		if err := store.Sessions().Insert(ctx, owner, s); err != nil {
			return stores{}, err
		}
	}
	return stores{decks: store.Decks(), cards: store.Flashcards(), sessions: store.Sessions()}, nil
}

func demoSession(id string, start time.Time, d time.Duration, results map[string]bool) models.ReviewSessionSummary {
	s := models.ReviewSessionSummary{
		ID:                     id,
		StartDate:              start,
		CompletedDate:          start.Add(d),
		Mode:                   models.ReviewModePractice,
		FlashcardReviewResults: results,
		FlashcardCount:         len(results),
		DeckCount:              1,
	}
	for _, ok := range results {
		if ok {
			s.CorrectScore++
		} else {
			s.IncorrectScore++
		}
	}
	return s
}
