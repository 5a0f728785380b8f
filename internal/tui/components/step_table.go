package components

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/internal/output"
	"github.com/rgehrsitz/egpension/internal/tui/tuistyles"
)

// StepTable is a scrollable table of progression steps.
type StepTable struct {
	table table.Model
	steps []domain.ProgressionStep
}

var stepColumns = []table.Column{
	{Title: "Date", Width: 8},
	{Title: "Kind", Width: 18},
	{Title: "Before", Width: 12},
	{Title: "Bonus%", Width: 8},
	{Title: "Bonus", Width: 10},
	{Title: "Min uplift", Width: 10},
	{Title: "After", Width: 12},
}

// NewStepTable creates an empty, focused step table.
func NewStepTable() *StepTable {
	t := table.New(
		table.WithColumns(stepColumns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = tuistyles.TableHeaderStyle
	s.Selected = tuistyles.TableHighlightStyle
	t.SetStyles(s)
	return &StepTable{table: t}
}

// SetSteps replaces the rows.
func (s *StepTable) SetSteps(steps []domain.ProgressionStep) {
	s.steps = steps
	rows := make([]table.Row, len(steps))
	for i, st := range steps {
		pct := ""
		if st.BonusPercentage != nil {
			pct = output.FormatPercentage(*st.BonusPercentage)
		}
		rows[i] = table.Row{
			output.FormatMonth(st.Date),
			string(st.Kind),
			st.PensionBefore.StringFixed(2),
			pct,
			st.BonusAmount.StringFixed(2),
			st.MinUplift.StringFixed(2),
			st.PensionAfter.StringFixed(2),
		}
	}
	s.table.SetRows(rows)
	s.table.SetCursor(0)
}

// SetHeight sets the number of visible rows.
func (s *StepTable) SetHeight(h int) {
	if h < 3 {
		h = 3
	}
	s.table.SetHeight(h)
}

// Selected returns the step under the cursor.
func (s *StepTable) Selected() (domain.ProgressionStep, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.steps) {
		return domain.ProgressionStep{}, false
	}
	return s.steps[i], true
}

// Cursor is the selected row index.
func (s *StepTable) Cursor() int { return s.table.Cursor() }

// Update forwards navigation keys to the table.
func (s *StepTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return cmd
}

// View renders the table.
func (s *StepTable) View() string { return s.table.View() }
