package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// compensationBands maps age at death to the number of years of pension paid
// when a pensioner dies without beneficiaries.
var compensationBands = []struct {
	underAge int
	years    decimal.Decimal
}{
	{30, decimal.NewFromInt(6)},
	{40, decimal.NewFromInt(5)},
	{50, decimal.NewFromInt(4)},
	{55, decimal.NewFromInt(3)},
	{60, decimal.NewFromFloat(2.5)},
}

var compensationMinYears = decimal.NewFromInt(2)

// CompensationCoefficient returns the years of pension owed for a death at age.
func CompensationCoefficient(age int) decimal.Decimal {
	for _, b := range compensationBands {
		if age < b.underAge {
			return b.years
		}
	}
	return compensationMinYears
}

// ageAt is the age in whole years on date.
func ageAt(birth, date time.Time) int {
	age := date.Year() - birth.Year()
	if date.Month() < birth.Month() || (date.Month() == birth.Month() && date.Day() < birth.Day()) {
		age--
	}
	return age
}

// calculateCompensation settles the lump sum owed when the pensioner leaves
// no beneficiaries: the pension at death times twelve times the age
// coefficient, plus the funeral expenses.
func (ce *CalculationEngine) calculateCompensation(in *settlementInput, data domain.ProgressionData, r *result) {
	pension := PensionAt(dateutil.MonthStart(in.death), data, false)
	age := ageAt(in.birth, in.death)
	compensation := pension.Mul(monthsPerYear).Mul(CompensationCoefficient(age)).Round(2)
	funeral, _ := deathGrants(in.variant, in.death, pension)

	r.entitle(labelCompensation, compensation)
	r.entitle(labelFuneral, funeral)
	r.note(fmt.Sprintf("age at death: %d", age))

	o := applyDeductions(in.deductions, compensation, funeral)
	r.applyDeductions(o)
	r.deduct(labelCompensationCommission, calculateCommission(o.remaining(0, compensation), in.death))
	r.deduct(labelFuneralCommission, calculateCommission(o.remaining(1, funeral), in.death))
}
