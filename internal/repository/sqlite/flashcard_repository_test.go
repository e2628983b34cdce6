package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
	"github.com/vytor/flashkata/internal/repository/sqlite"
	"github.com/vytor/flashkata/internal/testutil"
)

type FlashcardRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	repo  repository.FlashcardRepository
	decks repository.DeckRepository
}

func (s *FlashcardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFlashcardRepository(s.db)
	s.decks = sqlite.NewDeckRepository(s.db)

	ctx := testutil.Context()
	s.Require().NoError(s.decks.Insert(ctx, testutil.Deck("alice", "d1", "Spanish", "green")))
	s.Require().NoError(s.decks.Insert(ctx, testutil.Deck("alice", "d2", "French", "red")))
}

func (s *FlashcardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func card(id, deckID string, created time.Time) models.Flashcard {
	return models.Flashcard{ID: id, OwnerID: "alice", DeckID: deckID, Front: "front " + id, Back: "back " + id, CreatedAt: created}
}

func (s *FlashcardRepositorySuite) TestInsertAndGet() {
	ctx := testutil.Context()
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	s.Require().NoError(s.repo.Insert(ctx, card("c1", "d1", created)))

	got, err := s.repo.Get(ctx, "alice", "c1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("d1", got.DeckID)
	s.Equal("front c1", got.Front)
	s.Equal("back c1", got.Back)
	s.True(created.Equal(got.CreatedAt))
}

func (s *FlashcardRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(testutil.Context(), "alice", "nope")
	s.NoError(err)
	s.Nil(got)
}

func (s *FlashcardRepositorySuite) TestGetIsScopedToOwner() {
	ctx := testutil.Context()
	s.Require().NoError(s.repo.Insert(ctx, card("c1", "d1", time.Now())))

	got, err := s.repo.Get(ctx, "bob", "c1")
	s.NoError(err)
	s.Nil(got)
}

func (s *FlashcardRepositorySuite) TestListByDeckOrdersByCreation() {
	ctx := testutil.Context()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.Insert(ctx, card("c2", "d1", base.Add(time.Hour))))
	s.Require().NoError(s.repo.Insert(ctx, card("c1", "d1", base)))
	s.Require().NoError(s.repo.Insert(ctx, card("c3", "d2", base)))

	cards, err := s.repo.ListByDeck(ctx, "alice", "d1")
	s.Require().NoError(err)
	s.Require().Len(cards, 2)
	s.Equal("c1", cards[0].ID)
	s.Equal("c2", cards[1].ID)
}

func (s *FlashcardRepositorySuite) TestInsertRequiresExistingDeck() {
	err := s.repo.Insert(testutil.Context(), card("c1", "missing", time.Now()))
	s.Error(err)
}

func (s *FlashcardRepositorySuite) TestDelete() {
	ctx := testutil.Context()
	s.Require().NoError(s.repo.Insert(ctx, card("c1", "d1", time.Now())))
	s.Require().NoError(s.repo.Delete(ctx, "alice", "c1"))

	got, err := s.repo.Get(ctx, "alice", "c1")
	s.NoError(err)
	s.Nil(got)
}

func (s *FlashcardRepositorySuite) TestDeletingDeckCascadesToCards() {
	ctx := testutil.Context()
	s.Require().NoError(s.repo.Insert(ctx, card("c1", "d1", time.Now())))
	s.Require().NoError(s.decks.Delete(ctx, "alice", "d1"))

	got, err := s.repo.Get(ctx, "alice", "c1")
	s.NoError(err)
	s.Nil(got)
}

func TestFlashcardRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlashcardRepositorySuite))
}
