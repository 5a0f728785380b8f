package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/egpension/internal/calculation"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testForm   = "../../test/testdata/form_periodic.yaml"
	testTables = "../../test/testdata/tables.yaml"
)

func testEngine() *calculation.CalculationEngine {
	e := calculation.NewCalculationEngine()
	e.Now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
	return e
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(testForm, testTables, testEngine())
	msg := m.Init()()
	done, ok := msg.(CalculationCompleteMsg)
	require.True(t, ok, "got %#v", msg)
	updated, _ := m.Update(done)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	m = updated.(Model)
	if cmd != nil {
		if nav, ok := cmd().(NavigateMsg); ok {
			updated, _ = m.Update(nav)
			m = updated.(Model)
		}
	}
	return m
}

func TestInit_ComputesProgressionAndSettlement(t *testing.T) {
	m := loadedModel(t)

	assert.False(t, m.loading)
	assert.NoError(t, m.err)
	require.NotNil(t, m.form)
	assert.Equal(t, domain.LawType148, m.form.LawType)
	assert.False(t, m.progression.IsEmpty())
	require.NotNil(t, m.result)
	assert.NoError(t, m.settlementErr)
	assert.Equal(t, domain.DuesPeriodic, m.result.DuesType)
}

func TestInit_MissingFile(t *testing.T) {
	m := NewModel("missing.yaml", testTables, testEngine())
	msg := m.Init()()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)
	assert.Contains(t, errMsg.Err.Error(), "failed to read file")

	updated, _ := m.Update(errMsg)
	view := updated.(Model).View()
	assert.Contains(t, view, "Error:")
}

func TestNavigation(t *testing.T) {
	m := loadedModel(t)
	assert.Equal(t, SceneSummary, m.currentScene)

	m = press(t, m, "2")
	assert.Equal(t, SceneSteps, m.currentScene)
	assert.Contains(t, m.View(), "initial")

	m = press(t, m, "3")
	assert.Equal(t, SceneSettlement, m.currentScene)
	assert.Equal(t, SceneSteps, m.previousScene)
	assert.Contains(t, m.View(), "Net payable")

	m = press(t, m, "?")
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")

	m = press(t, m, "1")
	assert.Equal(t, SceneSummary, m.currentScene)
	assert.Contains(t, m.View(), "Current pension")
}

func TestStepsCursor(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "2")
	require.Equal(t, 0, m.steps.Cursor())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.steps.Cursor())

	st, ok := m.steps.Selected()
	require.True(t, ok)
	assert.Equal(t, m.progression.Steps[1].Kind, st.Kind)
}

func TestSettlementError(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(CalculationCompleteMsg{
		Progression:   m.progression,
		SettlementErr: errors.New("death_date is required for inheritance dues"),
	})
	m = updated.(Model)
	m = press(t, m, "3")
	assert.Contains(t, m.View(), "Settlement not available")
}

func TestQuit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowResize(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 70, Height: 20})
	m = updated.(Model)
	assert.Equal(t, 70, m.width)
	assert.NotEmpty(t, m.View())
}
