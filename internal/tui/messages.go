package tui

import (
	"github.com/rgehrsitz/egpension/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneSteps
	SceneSettlement
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CalculationCompleteMsg carries a freshly computed progression and settlement.
// SettlementErr is set when the form's dues could not be settled; the
// progression is still shown.
type CalculationCompleteMsg struct {
	Form          *domain.InsuranceDuesFormData
	Tables        *domain.TableSet
	Progression   domain.ProgressionData
	Result        *domain.CalculationResultData
	SettlementErr error
}
