package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/vytor/flashkata/internal/errors"
	"github.com/vytor/flashkata/internal/tracker"
)

const dateLayout = "2006-01-02"

// parseDate reads a YYYY-MM-DD calendar date in the server's location. An
// empty value means today.
func (s *Server) parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().In(s.location()), nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, s.location())
	if err != nil {
		return time.Time{}, errors.NewBadRequestError("date must be formatted as YYYY-MM-DD")
	}
	return d, nil
}

func (s *Server) handleTracker(w http.ResponseWriter, r *http.Request) {
	date, err := s.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	summary, err := s.TrackerService.LoadTrackerSummary(r.Context(), ownerFromContext(r.Context()), date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tracker.ProjectSummary(summary))
}

func (s *Server) handleHasSessions(w http.ResponseWriter, r *http.Request) {
	ok, err := s.TrackerService.HasAnySessionSummaries(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"has_sessions": ok})
}

type selectDateRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleSelectDate(w http.ResponseWriter, r *http.Request) {
	var req selectDateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	date, err := s.parseDate(req.Date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	summary, err := s.TrackerService.SelectDate(r.Context(), ownerFromContext(r.Context()), date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tracker.ProjectSummary(summary))
}

func (s *Server) handleCurrentSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.TrackerService.CurrentSummary(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tracker.ProjectSummary(summary))
}
