package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/egpension/internal/output"
	"github.com/rgehrsitz/egpension/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to retry, q to quit", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneSummary:
		content = m.renderSummary()
	case SceneSteps:
		content = m.renderSteps()
	case SceneSettlement:
		content = m.renderSettlement()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("EGPENSION - Pension Dues")
	crumb := m.currentScene.String()
	if m.form != nil {
		name := m.form.PensionerName
		if name == "" {
			name = m.form.LawType.DisplayName()
		}
		crumb = fmt.Sprintf("%s / %s", crumb, name)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("1", "summary"),
		formatShortcut("2", "progression"),
		formatShortcut("3", "settlement"),
		formatShortcut("r", "reload"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderSummary() string {
	s := m.progression.Summary
	info := []string{
		fmt.Sprintf("Law:          %s", s.LawType.DisplayName()),
		fmt.Sprintf("Entitlement:  %s", output.FormatMonth(s.EntitlementDate)),
		fmt.Sprintf("Bonus table:  %s", s.BonusTableName),
		fmt.Sprintf("Steps:        %d", len(m.progression.Steps)),
	}

	cards := []*components.MetricCard{
		components.NewAmountCard("Initial pension", s.InitialPension),
		components.NewAmountCard("Current pension", s.CurrentPension).WithChange(s.CurrentPension, s.InitialPension),
		components.NewAmountCard("Total bonuses", s.TotalBonuses),
		components.NewAmountCard("Minimum uplifts", s.TotalMinimumUplifts),
	}
	if s.ExceptionalGrantsTotal.IsPositive() {
		cards = append(cards, components.NewAmountCard("Exceptional grants", s.ExceptionalGrantsTotal))
	}
	if m.result != nil {
		cards = append(cards, components.NewAmountCard("Net payable", m.result.NetPayable).
			WithDescription(string(m.result.DuesType)))
	}

	columns := 3
	if m.width < 90 {
		columns = 2
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		BorderStyle.Render(strings.Join(info, "\n")),
		components.MetricGrid(cards, columns),
	)
}

func (m Model) renderSteps() string {
	var detail string
	if st, ok := m.steps.Selected(); ok {
		detail = fmt.Sprintf("%s  %s", output.FormatMonth(st.Date), st.Description)
		if len(st.References) > 0 {
			refs := make([]string, len(st.References))
			for i, n := range st.References {
				refs[i] = fmt.Sprint(n)
			}
			detail += "  (also tables " + strings.Join(refs, ", ") + ")"
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.steps.View(),
		InfoStyle.Render(detail),
	)
}

func (m Model) renderSettlement() string {
	if m.settlementErr != nil {
		return ErrorStyle.Render("Settlement not available: " + m.settlementErr.Error())
	}
	if m.result == nil {
		return BorderStyle.Render("No settlement")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "As of %s\n\n", output.FormatMonth(m.result.AsOf))
	b.WriteString("Entitlements\n")
	for _, l := range m.result.Entitlements {
		fmt.Fprintf(&b, "  %-34s %18s\n", l.Label, FormatCurrency(l.Amount))
	}
	b.WriteString("Deductions\n")
	for _, l := range m.result.Deductions {
		fmt.Fprintf(&b, "  %-34s %18s\n", l.Label, FormatCurrency(l.Amount))
	}
	fmt.Fprintf(&b, "\nNet payable: %s", FormatCurrency(m.result.NetPayable))

	parts := []string{BorderStyle.Render(b.String())}
	for _, w := range m.result.Warnings {
		parts = append(parts, WarningStyle.Render("! "+w))
	}
	for _, n := range m.result.Notes {
		parts = append(parts, SubtitleStyle.Render(n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHelp() string {
	return BorderStyle.Render(`EGPENSION - Pension Dues Browser

KEYBOARD SHORTCUTS:
  1 / h    Summary
  2 / p    Progression steps
  3 / d    Settlement
  r        Reload form and tables from disk
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

PROGRESSION:
  Up/Down or j/k to move between steps`)
}
