package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashkata/internal/models"
)

func TestChartItem_PercentCorrect(t *testing.T) {
	item := models.ChartItem{FlashcardResults: map[string]bool{"c1": true, "c2": false}}
	pct, ok := item.PercentCorrect()
	assert.True(t, ok)
	assert.Equal(t, 50.0, pct)
	assert.Equal(t, 2, item.FlashcardCount())

	empty := models.ChartItem{}
	pct, ok = empty.PercentCorrect()
	assert.False(t, ok)
	assert.Zero(t, pct)
}

func TestChartItem_PrimaryColor(t *testing.T) {
	blue, _ := models.ThemeByName("blue")
	parent := "p"

	top := models.ChartItem{Deck: models.Deck{Theme: blue}}
	sub := models.ChartItem{Deck: models.Deck{Theme: blue, ParentDeckID: &parent}}

	assert.Equal(t, blue.Primary, top.PrimaryColor())
	assert.Equal(t, blue.Secondary, sub.PrimaryColor())
}

func TestDeletedDeck(t *testing.T) {
	d := models.DeletedDeck()
	assert.Equal(t, "Deleted", d.Name)
	assert.False(t, d.IsSubdeck())
	assert.True(t, models.ChartItem{Deck: d}.IsDeleted())
	assert.Equal(t, "gray", d.Theme.Name)
}
