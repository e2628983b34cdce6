package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashkata/internal/models"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.SessionService.ListSessions(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []models.ReviewSessionSummary{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"sessions": sessions})
}

// handleRecordSession stores a completed session. The owner always comes from
// the request header, never from the body.
func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	var summary models.ReviewSessionSummary
	if err := decodeJSON(w, r, &summary); err != nil {
		handleError(w, r, err)
		return
	}
	saved, err := s.SessionService.RecordSession(r.Context(), ownerFromContext(r.Context()), summary)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, saved)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	summary, err := s.SessionService.GetSession(r.Context(), ownerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
