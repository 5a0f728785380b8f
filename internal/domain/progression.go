package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StepKind classifies a progression step.
type StepKind string

const (
	StepInitial          StepKind = "initial"
	StepLaw30Addition    StepKind = "law30_addition"
	StepUplift           StepKind = "uplift"
	StepMinimumFloor     StepKind = "minimum_floor"
	StepInjuryAddition   StepKind = "injury_addition"
	StepBonus            StepKind = "bonus"
	StepFixedIncrease    StepKind = "fixed_increase"
	StepSpecialUplift134 StepKind = "special_uplift_134"
)

// IsAbsoluteFloor reports whether the step kind sets an absolute pension
// value instead of adding a delta.
func (k StepKind) IsAbsoluteFloor() bool {
	return k == StepFixedIncrease || k == StepSpecialUplift134
}

// ProgressionStep is one immutable audit-trail entry. For additive kinds
// PensionAfter = PensionBefore + BonusAmount + MinUplift.
type ProgressionStep struct {
	Date            time.Time        `yaml:"date" json:"date"`
	Kind            StepKind         `yaml:"kind" json:"kind"`
	Description     string           `yaml:"description" json:"description"`
	PensionBefore   decimal.Decimal  `yaml:"pension_before" json:"pensionBefore"`
	BonusPercentage *decimal.Decimal `yaml:"bonus_percentage,omitempty" json:"bonusPercentage,omitempty"`
	BonusAmount     decimal.Decimal  `yaml:"bonus_amount" json:"bonusAmount"`
	MinUplift       decimal.Decimal  `yaml:"min_uplift" json:"minUplift"`
	PensionAfter    decimal.Decimal  `yaml:"pension_after" json:"pensionAfter"`
	// References lists the historical table numbers that also changed the
	// pension at this date. Only set for pre-May-2008 Law 79/108 entitlements.
	References []int `yaml:"references,omitempty" json:"references,omitempty"`
}

// ExceptionalGrant is a one-time, law-independent monthly add-on.
type ExceptionalGrant struct {
	EffectiveDate time.Time       `yaml:"effective_date" json:"effectiveDate"`
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	Description   string          `yaml:"description" json:"description"`
}

// ProgressionSummary holds the key totals of a progression.
type ProgressionSummary struct {
	LawType         LawType   `yaml:"law_type" json:"lawType"`
	EntitlementDate time.Time `yaml:"entitlement_date" json:"entitlementDate"`
	BonusTableName  string    `yaml:"bonus_table_name" json:"bonusTableName"`

	InitialPension      decimal.Decimal `yaml:"initial_pension" json:"initialPension"`
	Law30Addition       decimal.Decimal `yaml:"law30_addition" json:"law30Addition"`
	UpliftAmount        decimal.Decimal `yaml:"uplift_amount" json:"upliftAmount"`
	InitialMinimumTopUp decimal.Decimal `yaml:"initial_minimum_top_up" json:"initialMinimumTopUp"`
	InjuryAddition      decimal.Decimal `yaml:"injury_addition" json:"injuryAddition"`
	TotalBonuses        decimal.Decimal `yaml:"total_bonuses" json:"totalBonuses"`
	TotalMinimumUplifts decimal.Decimal `yaml:"total_minimum_uplifts" json:"totalMinimumUplifts"`
	FixedIncreases      decimal.Decimal `yaml:"fixed_increases" json:"fixedIncreases"`
	CurrentPension      decimal.Decimal `yaml:"current_pension" json:"currentPension"`

	ExceptionalGrants      []ExceptionalGrant `yaml:"exceptional_grants,omitempty" json:"exceptionalGrants,omitempty"`
	ExceptionalGrantsTotal decimal.Decimal    `yaml:"exceptional_grants_total" json:"exceptionalGrantsTotal"`
}

// ProgressionData is the full history of a pension from entitlement onward.
type ProgressionData struct {
	Summary ProgressionSummary `yaml:"summary" json:"summary"`
	Steps   []ProgressionStep  `yaml:"steps" json:"steps"`
}

// IsEmpty reports whether the progression could not be computed.
func (p ProgressionData) IsEmpty() bool { return len(p.Steps) == 0 }

// LastStep returns the final step, if any.
func (p ProgressionData) LastStep() (ProgressionStep, bool) {
	if len(p.Steps) == 0 {
		return ProgressionStep{}, false
	}
	return p.Steps[len(p.Steps)-1], true
}
