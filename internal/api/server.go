package api

import (
	"context"
	"time"

	"github.com/vytor/flashkata/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DeckService      services.DeckService
	FlashcardService services.FlashcardService
	SessionService   services.SessionService
	TrackerService   services.TrackerService
	DB               Pinger
	// Location is the calendar used to interpret dates in requests.
	Location *time.Location
}

func (s *Server) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}
