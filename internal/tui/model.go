package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/egpension/internal/calculation"
	"github.com/rgehrsitz/egpension/internal/config"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/internal/tui/components"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	formPath   string
	tablesPath string
	engine     *calculation.CalculationEngine

	form          *domain.InsuranceDuesFormData
	tables        *domain.TableSet
	progression   domain.ProgressionData
	result        *domain.CalculationResultData
	settlementErr error

	steps *components.StepTable

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a model that computes the form at formPath against the
// tables at tablesPath.
func NewModel(formPath, tablesPath string, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return Model{
		currentScene:   SceneSummary,
		formPath:       formPath,
		tablesPath:     tablesPath,
		engine:         engine,
		steps:          components.NewStepTable(),
		width:          100,
		height:         30,
		loading:        true,
		loadingMessage: "Calculating...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return calculateCmd(m.formPath, m.tablesPath, m.engine)
}

// calculateCmd loads both files and runs the engine.
func calculateCmd(formPath, tablesPath string, engine *calculation.CalculationEngine) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		tables, err := parser.LoadTablesFromFile(tablesPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		form, err := parser.LoadFormFromFile(formPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		data, err := engine.ProgressionForForm(form, tables)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		res, settleErr := engine.Calculate(form, tables)
		return CalculationCompleteMsg{
			Form:          form,
			Tables:        tables,
			Progression:   data,
			Result:        res,
			SettlementErr: settleErr,
		}
	}
}

func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneSteps:
		return "Progression"
	case SceneSettlement:
		return "Settlement"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
