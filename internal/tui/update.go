package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyQuit       = key.NewBinding(key.WithKeys("ctrl+c", "q"))
	keyHelp       = key.NewBinding(key.WithKeys("?"))
	keyBack       = key.NewBinding(key.WithKeys("esc"))
	keySummary    = key.NewBinding(key.WithKeys("1", "h"))
	keySteps      = key.NewBinding(key.WithKeys("2", "p"))
	keySettlement = key.NewBinding(key.WithKeys("3", "d"))
	keyReload     = key.NewBinding(key.WithKeys("r"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.steps.SetHeight(m.height - 10)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		m.err = nil
		m.form = msg.Form
		m.tables = msg.Tables
		m.progression = msg.Progression
		m.result = msg.Result
		m.settlementErr = msg.SettlementErr
		m.steps.SetSteps(msg.Progression.Steps)
		return m, nil
	}

	return m, nil
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keyQuit) {
		return m, tea.Quit
	}
	if m.err != nil {
		// any key dismisses the error and retries
		m.err = nil
		m.loading = true
		return m, calculateCmd(m.formPath, m.tablesPath, m.engine)
	}

	switch {
	case key.Matches(msg, keyHelp):
		return m, navigate(SceneHelp)
	case key.Matches(msg, keyBack):
		if m.currentScene != SceneSummary {
			return m, navigate(m.previousScene)
		}
		return m, nil
	case key.Matches(msg, keySummary):
		return m, navigate(SceneSummary)
	case key.Matches(msg, keySteps):
		return m, navigate(SceneSteps)
	case key.Matches(msg, keySettlement):
		return m, navigate(SceneSettlement)
	case key.Matches(msg, keyReload):
		m.loading = true
		m.loadingMessage = "Recalculating..."
		m.engine.ResetCache()
		return m, calculateCmd(m.formPath, m.tablesPath, m.engine)
	}

	if m.currentScene == SceneSteps {
		return m, m.steps.Update(msg)
	}
	return m, nil
}
