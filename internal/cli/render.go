// Package cli renders tracker output for the terminal.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vytor/flashkata/internal/tracker"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(14)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

const barWidth = 20

// RenderTitle renders title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderBar renders pct (0-100) as a block bar in color.
func RenderBar(pct float64, color string) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * barWidth)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}

// RenderSummary renders the headline numbers followed by one row per chart.
func RenderSummary(ownerID string, s tracker.SummaryView) string {
	var b strings.Builder
	b.WriteString(RenderTitle(fmt.Sprintf("%s · %s", ownerID, s.Date)))
	b.WriteString("\n\n")

	stat := func(label, value string) {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	stat("Cards learned", fmt.Sprintf("%d", s.CardsLearned))
	stat("Streak", pluralDays(s.Streak))
	stat("Time studied", s.TimeStudied)
	b.WriteString("\n")

	if len(s.Charts) == 0 {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render("No flashcards reviewed on this day."))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 0
	for _, c := range s.Charts {
		if w := lipgloss.Width(chartName(c)); w > nameWidth {
			nameWidth = w
		}
	}
	nameStyle := lipgloss.NewStyle().Width(nameWidth + 2)
	for _, c := range s.Charts {
		pct := "   -"
		var bar string
		if c.PercentCorrect != nil {
			pct = fmt.Sprintf("%3.0f%%", *c.PercentCorrect)
			bar = RenderBar(*c.PercentCorrect, c.Color)
		} else {
			bar = RenderBar(0, c.Color)
		}
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(chartName(c)))
		b.WriteString(bar)
		b.WriteString(fmt.Sprintf(" %s  %d/%d\n", pct, c.CorrectCount, c.FlashcardCount))
	}
	return b.String()
}

func chartName(c tracker.ChartView) string {
	if c.IsSubdeck {
		return "└ " + c.DeckName
	}
	return c.DeckName
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
