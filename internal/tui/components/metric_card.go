package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/egpension/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single amount with label and optional change
type MetricCard struct {
	Label       string
	Value       string
	Change      *Change
	Description string
	Width       int
}

// Change is an amount's movement relative to a reference value.
type Change struct {
	IsPositive bool
	Amount     string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// NewAmountCard creates a card for a monetary amount.
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, tuistyles.FormatCurrency(amount))
}

// WithChange shows the difference between the card's amount and from.
// A zero difference shows nothing.
func (m *MetricCard) WithChange(amount, from decimal.Decimal) *MetricCard {
	diff := amount.Sub(from)
	if diff.IsZero() {
		return m
	}
	m.Change = &Change{
		IsPositive: diff.IsPositive(),
		Amount:     diff.Abs().StringFixed(2),
	}
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) changeText() string {
	if m.Change == nil {
		return ""
	}
	arrow := tuistyles.TrendIndicator(m.Change.IsPositive)
	return tuistyles.MetricTrendStyle(m.Change.IsPositive).Render(fmt.Sprintf("%s %s", arrow, m.Change.Amount))
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if c := m.changeText(); c != "" {
		content += "\n" + c
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// RenderCompact returns a compact inline version without border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if c := m.changeText(); c != "" {
		out += " " + c
	}
	return out
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
