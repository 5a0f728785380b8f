package domain

import (
	"github.com/shopspring/decimal"
)

// DuesType selects which settlement the engine produces.
type DuesType string

const (
	DuesPeriodic           DuesType = "periodic"
	DuesInheritance        DuesType = "inheritance"
	DuesBeneficiaryArrears DuesType = "beneficiary_arrears"
	DuesSeverance          DuesType = "severance"
)

// MaxArrearsPeriods is the number of arrears periods the form allows.
const MaxArrearsPeriods = 5

// DeductionCategory is one of the fixed deduction kinds a user may declare.
type DeductionCategory string

const (
	DeductionOverpaidPension DeductionCategory = "overpaid_pension"
	DeductionLoans           DeductionCategory = "loans"
	DeductionAlimony         DeductionCategory = "alimony"
	DeductionInsuranceDues   DeductionCategory = "insurance_dues"
	DeductionOther           DeductionCategory = "other"
)

// DeductionCategories lists the categories in display order.
var DeductionCategories = []DeductionCategory{
	DeductionOverpaidPension,
	DeductionLoans,
	DeductionAlimony,
	DeductionInsuranceDues,
	DeductionOther,
}

// Label is the Arabic display label of a deduction category.
func (c DeductionCategory) Label() string {
	switch c {
	case DeductionOverpaidPension:
		return "معاش منصرف بدون وجه حق"
	case DeductionLoans:
		return "أقساط قروض"
	case DeductionAlimony:
		return "نفقة"
	case DeductionInsuranceDues:
		return "مستحقات تأمينية"
	case DeductionOther:
		return "استقطاعات أخرى"
	}
	return string(c)
}

// ArrearsPeriod is one date range of owed pension with the share the
// claimant is entitled to. Its position in the form's slice is its ID.
type ArrearsPeriod struct {
	Start      string          `yaml:"start" json:"start" validate:"required,month"`
	End        string          `yaml:"end" json:"end" validate:"required,month"`
	Percentage decimal.Decimal `yaml:"percentage" json:"percentage"`
}

// Deduction is a user-declared deduction for one category.
type Deduction struct {
	Category DeductionCategory `yaml:"category" json:"category" validate:"required,oneof=overpaid_pension loans alimony insurance_dues other"`
	Enabled  bool              `yaml:"enabled" json:"enabled"`
	Amount   decimal.Decimal   `yaml:"amount" json:"amount"`
}

// InsuranceDuesFormData is the calculation input as produced by the form UI.
// Dates are kept in their entered textual form and parsed by the engine.
type InsuranceDuesFormData struct {
	LawType LawType `yaml:"law_type" json:"lawType" validate:"required,lawtype"`

	PensionerName   string `yaml:"pensioner_name" json:"pensionerName"`
	NationalID      string `yaml:"national_id,omitempty" json:"nationalId,omitempty"`
	InsuranceNumber string `yaml:"insurance_number,omitempty" json:"insuranceNumber,omitempty"`

	// EntitlementDate is YYYY-MM.
	EntitlementDate string `yaml:"entitlement_date" json:"entitlementDate" validate:"required,yearmonth"`
	// DeathDate and BirthDate are day-precision, D/M/Y or Y-M-D.
	DeathDate string `yaml:"death_date,omitempty" json:"deathDate,omitempty" validate:"omitempty,day"`
	BirthDate string `yaml:"birth_date,omitempty" json:"birthDate,omitempty" validate:"omitempty,day"`
	// CalculationDate is the YYYY-MM the settlement is computed as of.
	// Empty means the engine clock's current month.
	CalculationDate string `yaml:"calculation_date,omitempty" json:"calculationDate,omitempty" validate:"omitempty,yearmonth"`

	NormalBasicPension decimal.Decimal `yaml:"normal_basic_pension" json:"normalBasicPension"`
	InjuryBasicPension decimal.Decimal `yaml:"injury_basic_pension" json:"injuryBasicPension"`
	VariablePension    decimal.Decimal `yaml:"variable_pension" json:"variablePension"`
	SpecialBonuses     decimal.Decimal `yaml:"special_bonuses" json:"specialBonuses"`

	DuesType       DuesType        `yaml:"dues_type" json:"duesType" validate:"required,oneof=periodic inheritance beneficiary_arrears severance"`
	ArrearsPeriods []ArrearsPeriod `yaml:"arrears_periods,omitempty" json:"arrearsPeriods,omitempty" validate:"max=5,dive"`
	Deductions     []Deduction     `yaml:"deductions,omitempty" json:"deductions,omitempty" validate:"max=5,unique=Category,dive"`

	SeveranceDate       string          `yaml:"severance_date,omitempty" json:"severanceDate,omitempty" validate:"omitempty,day"`
	SeverancePercentage decimal.Decimal `yaml:"severance_percentage" json:"severancePercentage"`

	NoBeneficiaries bool `yaml:"no_beneficiaries" json:"noBeneficiaries"`
}

// PensionComponents are the base amounts the progression starts from.
type PensionComponents struct {
	NormalBasic    decimal.Decimal `yaml:"normal_basic" json:"normalBasic"`
	InjuryBasic    decimal.Decimal `yaml:"injury_basic" json:"injuryBasic"`
	Variable       decimal.Decimal `yaml:"variable" json:"variable"`
	SpecialBonuses decimal.Decimal `yaml:"special_bonuses" json:"specialBonuses"`
}

// Components extracts the base pension amounts from the form.
func (f *InsuranceDuesFormData) Components() PensionComponents {
	return PensionComponents{
		NormalBasic:    f.NormalBasicPension,
		InjuryBasic:    f.InjuryBasicPension,
		Variable:       f.VariablePension,
		SpecialBonuses: f.SpecialBonuses,
	}
}

// ClampPercentage limits a percentage to [0, 100].
func ClampPercentage(p decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if p.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
