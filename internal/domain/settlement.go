package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a labelled amount in a settlement.
type LineItem struct {
	Label  string          `yaml:"label" json:"label"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// PeriodBreakdown summarises the arrears accumulated for one period.
type PeriodBreakdown struct {
	Index                   int             `yaml:"index" json:"index"`
	Start                   time.Time       `yaml:"start" json:"start"`
	End                     time.Time       `yaml:"end" json:"end"`
	Percentage              decimal.Decimal `yaml:"percentage" json:"percentage"`
	Months                  int             `yaml:"months" json:"months"`
	PensionArrears          decimal.Decimal `yaml:"pension_arrears" json:"pensionArrears"`
	MonthlyGrantArrears     decimal.Decimal `yaml:"monthly_grant_arrears" json:"monthlyGrantArrears"`
	ExceptionalGrantArrears decimal.Decimal `yaml:"exceptional_grant_arrears" json:"exceptionalGrantArrears"`
	Commission              decimal.Decimal `yaml:"commission" json:"commission"`
	Total                   decimal.Decimal `yaml:"total" json:"total"`
}

// PeriodicBreakdown is the monthly pension payable at a given month.
type PeriodicBreakdown struct {
	Date              time.Time       `yaml:"date" json:"date"`
	Pension           decimal.Decimal `yaml:"pension" json:"pension"`
	MonthlyGrant      decimal.Decimal `yaml:"monthly_grant" json:"monthlyGrant"`
	ExceptionalGrants decimal.Decimal `yaml:"exceptional_grants" json:"exceptionalGrants"`
	Total             decimal.Decimal `yaml:"total" json:"total"`
}

// CalculationResultData is the settlement produced by one Calculate call.
// It is never mutated after construction.
type CalculationResultData struct {
	LawType  LawType   `yaml:"law_type" json:"lawType"`
	DuesType DuesType  `yaml:"dues_type" json:"duesType"`
	AsOf     time.Time `yaml:"as_of" json:"asOf"`

	Entitlements []LineItem `yaml:"entitlements" json:"entitlements"`
	Deductions   []LineItem `yaml:"deductions" json:"deductions"`

	TotalEntitlements decimal.Decimal `yaml:"total_entitlements" json:"totalEntitlements"`
	TotalDeductions   decimal.Decimal `yaml:"total_deductions" json:"totalDeductions"`
	NetPayable        decimal.Decimal `yaml:"net_payable" json:"netPayable"`

	ArrearsBreakdown []PeriodBreakdown  `yaml:"arrears_breakdown,omitempty" json:"arrearsBreakdown,omitempty"`
	Periodic         *PeriodicBreakdown `yaml:"periodic,omitempty" json:"periodic,omitempty"`

	Warnings []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Notes    []string `yaml:"notes,omitempty" json:"notes,omitempty"`
}
