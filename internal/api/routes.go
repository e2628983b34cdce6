package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(ownerMiddleware)

		r.Route("/tracker", func(r chi.Router) {
			r.Get("/", s.handleTracker)
			r.Get("/has-sessions", s.handleHasSessions)
			r.Post("/select", s.handleSelectDate)
			r.Get("/current", s.handleCurrentSummary)
		})

		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{id}", s.handleGetDeck)
		r.Delete("/decks/{id}", s.handleDeleteDeck)
		r.Get("/decks/{id}/flashcards", s.handleListFlashcards)
		r.Post("/decks/{id}/flashcards", s.handleCreateFlashcard)

		r.Get("/flashcards/{id}", s.handleGetFlashcard)
		r.Delete("/flashcards/{id}", s.handleDeleteFlashcard)

		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleRecordSession)
		r.Get("/sessions/{id}", s.handleGetSession)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute(r))
	})
	return r
}
