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

type SessionSummaryRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SessionSummaryRepository
}

func (s *SessionSummaryRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionSummaryRepository(s.db)
}

func (s *SessionSummaryRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.May, day, hour, minute, 0, 0, time.UTC)
}

func (s *SessionSummaryRepositorySuite) insert(owner string, sum models.ReviewSessionSummary) {
	s.Require().NoError(s.repo.Insert(testutil.Context(), owner, sum))
}

func sessionIDs(sums []models.ReviewSessionSummary) []string {
	out := make([]string, len(sums))
	for i, sum := range sums {
		out[i] = sum.ID
	}
	return out
}

func (s *SessionSummaryRepositorySuite) TestInsertAndGetRoundTrip() {
	target := 10
	sum := testutil.Session("s1", at(20, 9, 0), 15*time.Minute, map[string]bool{"a": true, "b": false})
	sum.Mode = models.ReviewModeTarget
	sum.TargetCorrectCount = &target
	s.insert("alice", sum)

	got, err := s.repo.Get(testutil.Context(), "alice", "s1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(models.ReviewModeTarget, got.Mode)
	s.Require().NotNil(got.TargetCorrectCount)
	s.Equal(10, *got.TargetCorrectCount)
	s.Nil(got.SessionTimeLimitSeconds)
	s.Nil(got.StreakCount)
	s.Equal(map[string]bool{"a": true, "b": false}, got.FlashcardReviewResults)
	s.True(at(20, 9, 0).Equal(got.StartDate))
	s.Equal(15*time.Minute, got.Duration())
	s.Require().NotNil(got.OwnerID)
	s.Equal("alice", *got.OwnerID)
}

func (s *SessionSummaryRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(testutil.Context(), "alice", "missing")
	s.NoError(err)
	s.Nil(got)
}

func (s *SessionSummaryRepositorySuite) TestDuplicateIDIsRejected() {
	sum := testutil.Session("s1", at(20, 9, 0), time.Minute, map[string]bool{"a": true})
	s.insert("alice", sum)

	sum.FlashcardReviewResults = map[string]bool{"a": false}
	s.ErrorIs(s.repo.Insert(testutil.Context(), "alice", sum), repository.ErrDuplicate)
	s.ErrorIs(s.repo.Insert(testutil.Context(), "bob", sum), repository.ErrDuplicate)

	got, err := s.repo.Get(testutil.Context(), "alice", "s1")
	s.Require().NoError(err)
	s.Equal(map[string]bool{"a": true}, got.FlashcardReviewResults)
}

func (s *SessionSummaryRepositorySuite) TestListForDateUsesWindowOverlap() {
	s.insert("alice", testutil.Session("inside", at(20, 9, 0), time.Hour, map[string]bool{"a": true}))
	s.insert("alice", testutil.Session("over-midnight", at(19, 23, 30), time.Hour, map[string]bool{"b": true}))
	s.insert("alice", testutil.Session("ends-at-midnight", at(20, 23, 30), 30*time.Minute, map[string]bool{"c": true}))
	s.insert("alice", testutil.Session("day-before", at(19, 10, 0), time.Hour, nil))
	s.insert("alice", testutil.Session("day-after", at(21, 0, 0), time.Hour, nil))
	s.insert("bob", testutil.Session("other-owner", at(20, 9, 0), time.Hour, nil))

	sums, err := s.repo.ListForDate(testutil.Context(), "alice", at(20, 12, 0))
	s.Require().NoError(err)
	s.Equal([]string{"over-midnight", "inside", "ends-at-midnight"}, sessionIDs(sums))
	s.Equal(map[string]bool{"b": true}, sums[0].FlashcardReviewResults)
}

func (s *SessionSummaryRepositorySuite) TestListForDateRespectsLocation() {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 03:00 UTC on the 21st is 22:00 on the 20th in loc.
	s.insert("alice", testutil.Session("late", at(21, 3, 0), 10*time.Minute, nil))

	local, err := s.repo.ListForDate(testutil.Context(), "alice", time.Date(2024, time.May, 20, 12, 0, 0, 0, loc))
	s.Require().NoError(err)
	s.Equal([]string{"late"}, sessionIDs(local))

	utc, err := s.repo.ListForDate(testutil.Context(), "alice", at(20, 12, 0))
	s.Require().NoError(err)
	s.Empty(utc)
}

func (s *SessionSummaryRepositorySuite) TestListAll() {
	s.insert("alice", testutil.Session("b", at(21, 9, 0), time.Minute, nil))
	s.insert("alice", testutil.Session("a", at(20, 9, 0), time.Minute, nil))
	s.insert("bob", testutil.Session("c", at(20, 9, 0), time.Minute, nil))

	sums, err := s.repo.ListAll(testutil.Context(), "alice")
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, sessionIDs(sums))
}

func (s *SessionSummaryRepositorySuite) TestExists() {
	ctx := testutil.Context()
	ok, err := s.repo.Exists(ctx, "alice")
	s.Require().NoError(err)
	s.False(ok)

	s.insert("alice", testutil.Session("s1", at(20, 9, 0), time.Minute, nil))

	ok, err = s.repo.Exists(ctx, "alice")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.repo.Exists(ctx, "bob")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *SessionSummaryRepositorySuite) TestSessionDays() {
	s.insert("alice", testutil.Session("s1", at(20, 9, 0), time.Minute, nil))
	s.insert("alice", testutil.Session("s2", at(20, 18, 0), time.Minute, nil))
	s.insert("alice", testutil.Session("s3", at(19, 9, 0), time.Minute, nil))
	s.insert("alice", testutil.Session("s4", at(17, 9, 0), time.Minute, nil))
	s.insert("alice", testutil.Session("future", at(22, 9, 0), time.Minute, nil))

	days, err := s.repo.SessionDays(testutil.Context(), "alice", at(20, 0, 0))
	s.Require().NoError(err)
	s.Equal([]time.Time{at(20, 0, 0), at(19, 0, 0), at(17, 0, 0)}, days)
}

func (s *SessionSummaryRepositorySuite) TestSessionDaysCountEveryOverlappedDay() {
	s.insert("alice", testutil.Session("late", at(18, 23, 50), 20*time.Minute, nil))
	s.insert("alice", testutil.Session("into-tomorrow", at(20, 23, 50), 20*time.Minute, nil))

	days, err := s.repo.SessionDays(testutil.Context(), "alice", at(20, 12, 0))
	s.Require().NoError(err)
	s.Equal([]time.Time{at(20, 0, 0), at(19, 0, 0), at(18, 0, 0)}, days)

	listed, err := s.repo.ListForDate(testutil.Context(), "alice", at(19, 0, 0))
	s.Require().NoError(err)
	s.Equal([]string{"late"}, sessionIDs(listed))
}

func TestSessionSummaryRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionSummaryRepositorySuite))
}
