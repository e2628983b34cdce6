package models

import (
	"sort"
	"time"
)

// ColorTheme is the pair of colors a deck is drawn with. Subdecks use the
// secondary color so they stand apart from their parent.
type ColorTheme struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

var themes = map[string]ColorTheme{
	"blue":   {Name: "blue", Primary: "#3B82F6", Secondary: "#93C5FD"},
	"green":  {Name: "green", Primary: "#22C55E", Secondary: "#86EFAC"},
	"red":    {Name: "red", Primary: "#EF4444", Secondary: "#FCA5A5"},
	"orange": {Name: "orange", Primary: "#F97316", Secondary: "#FDBA74"},
	"purple": {Name: "purple", Primary: "#A855F7", Secondary: "#D8B4FE"},
	"pink":   {Name: "pink", Primary: "#EC4899", Secondary: "#F9A8D4"},
	"gray":   {Name: "gray", Primary: "#6B7280", Secondary: "#D1D5DB"},
}

// DefaultThemeName is used when a deck is created without a theme.
const DefaultThemeName = "blue"

// ThemeByName looks up a named color theme.
func ThemeByName(name string) (ColorTheme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames returns the known theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type Deck struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Name         string     `json:"name"`
	Theme        ColorTheme `json:"theme"`
	ParentDeckID *string    `json:"parent_deck_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (d Deck) IsSubdeck() bool {
	return d.ParentDeckID != nil
}

// DeletedDeckID identifies the placeholder deck that collects outcomes for
// flashcards whose card or deck record no longer exists.
const DeletedDeckID = "deleted"

// DeletedDeck returns the placeholder deck used for orphaned review results.
func DeletedDeck() Deck {
	return Deck{
		ID:    DeletedDeckID,
		Name:  "Deleted",
		Theme: themes["gray"],
	}
}
