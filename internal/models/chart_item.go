package models

// ChartItem is one deck's slice of the tracker chart: the outcome of every
// card of that deck reviewed in the aggregation window.
type ChartItem struct {
	Deck             Deck            `json:"deck"`
	FlashcardResults map[string]bool `json:"flashcard_results"`
}

func (c ChartItem) FlashcardCount() int {
	return len(c.FlashcardResults)
}

func (c ChartItem) CorrectCount() int {
	n := 0
	for _, ok := range c.FlashcardResults {
		if ok {
			n++
		}
	}
	return n
}

// PercentCorrect returns the share of correct outcomes in [0, 100]. The second
// return value is false when the item holds no outcomes.
func (c ChartItem) PercentCorrect() (float64, bool) {
	total := len(c.FlashcardResults)
	if total == 0 {
		return 0, false
	}
	return float64(c.CorrectCount()) / float64(total) * 100, true
}

// PrimaryColor is the color the item is drawn with.
func (c ChartItem) PrimaryColor() string {
	if c.Deck.IsSubdeck() {
		return c.Deck.Theme.Secondary
	}
	return c.Deck.Theme.Primary
}

func (c ChartItem) IsDeleted() bool {
	return c.Deck.ID == DeletedDeckID
}
