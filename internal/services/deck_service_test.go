package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/flashkata/internal/errors"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
	"github.com/vytor/flashkata/internal/services"
	"github.com/vytor/flashkata/internal/testutil"
	"github.com/vytor/flashkata/internal/testutil/mocks"
)

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestDeckService_CreateDeck(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(d models.Deck) bool {
		return d.OwnerID == "alice" && d.Name == "Spanish" && d.Theme.Name == "green" && d.ID != ""
	})).Return(nil)

	svc := services.NewDeckService(repo)
	deck, err := svc.CreateDeck(testutil.Context(), "alice", "  Spanish ", "green", nil)

	require.NoError(t, err)
	assert.Equal(t, "Spanish", deck.Name)
	assert.False(t, deck.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestDeckService_CreateDeckDefaultsTheme(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	deck, err := services.NewDeckService(repo).CreateDeck(testutil.Context(), "alice", "Math", "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultThemeName, deck.Theme.Name)
}

func TestDeckService_CreateDeckValidation(t *testing.T) {
	missing := "missing"
	repo := new(mocks.MockDeckRepository)
	repo.On("Get", mock.Anything, "alice", "missing").Return(nil, nil)
	svc := services.NewDeckService(repo)

	tests := []struct {
		name   string
		dname  string
		theme  string
		parent *string
	}{
		{"empty name", "   ", "blue", nil},
		{"unknown theme", "Deck", "teal", nil},
		{"missing parent", "Deck", "blue", &missing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDeck(testutil.Context(), "alice", tt.dname, tt.theme, tt.parent)
			assert.Equal(t, apperrors.ErrCodeValidation, appCode(t, err))
		})
	}
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestDeckService_CreateSubdeck(t *testing.T) {
	parent := testutil.Deck("alice", "lang", "Languages", "blue")
	repo := new(mocks.MockDeckRepository)
	repo.On("Get", mock.Anything, "alice", "lang").Return(&parent, nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	parentID := "lang"
	deck, err := services.NewDeckService(repo).CreateDeck(testutil.Context(), "alice", "Spanish", "blue", &parentID)
	require.NoError(t, err)
	assert.True(t, deck.IsSubdeck())
}

func TestDeckService_GetDeckNotFound(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	repo.On("Get", mock.Anything, "alice", "x").Return(nil, nil)

	_, err := services.NewDeckService(repo).GetDeck(testutil.Context(), "alice", "x")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeckService_ListDecksStoreFailure(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	repo.On("List", mock.Anything, "alice", repository.DeckFilter{}).Return(nil, errors.New("disk on fire"))

	_, err := services.NewDeckService(repo).ListDecks(testutil.Context(), "alice", repository.DeckFilter{})
	assert.Equal(t, apperrors.ErrCodeInternal, appCode(t, err))
}

func TestDeckService_DeleteDeck(t *testing.T) {
	deck := testutil.Deck("alice", "d1", "Spanish", "blue")
	repo := new(mocks.MockDeckRepository)
	repo.On("Get", mock.Anything, "alice", "d1").Return(&deck, nil)
	repo.On("Delete", mock.Anything, "alice", "d1").Return(nil)

	require.NoError(t, services.NewDeckService(repo).DeleteDeck(testutil.Context(), "alice", "d1"))
	repo.AssertExpectations(t)
}
