package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashkata/internal/models"
	"github.com/vytor/flashkata/internal/repository"
)

type createDeckRequest struct {
	Name         string  `json:"name"`
	Theme        string  `json:"theme"`
	ParentDeckID *string `json:"parent_deck_id"`
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.DeckFilter{
		TopLevelOnly: q.Get("top_level") == "true",
		NamePrefix:   q.Get("prefix"),
	}
	if parent := q.Get("parent"); parent != "" {
		filter.ParentDeckID = &parent
	}

	decks, err := s.DeckService.ListDecks(r.Context(), ownerFromContext(r.Context()), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if decks == nil {
		decks = []models.Deck{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"decks": decks})
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	deck, err := s.DeckService.CreateDeck(r.Context(), ownerFromContext(r.Context()), req.Name, req.Theme, req.ParentDeckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, deck)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.DeckService.GetDeck(r.Context(), ownerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.DeckService.DeleteDeck(r.Context(), ownerFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
