package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Line-item labels.
const (
	labelPension                = "المعاش الشهري"
	labelMonthlyGrant           = "المنحة الشهرية"
	labelExceptionalGrants      = "المنح الاستثنائية"
	labelPensionArrears         = "متجمد المعاش"
	labelGrantArrears           = "متجمد المنحة الشهرية"
	labelExceptionalArrears     = "متجمد المنح الاستثنائية"
	labelDeathGrant             = "منحة الوفاة"
	labelFuneral                = "نفقات الجنازة"
	labelSeveranceGrant         = "منحة قطع المعاش"
	labelCompensation           = "التعويض عن عدم وجود مستحقين"
	labelArrearsCommission      = "عمولة صرف المتجمد"
	labelMonthlyCommission      = "عمولة صرف المعاش"
	labelDeathCommission        = "عمولة صرف منحة الوفاة"
	labelFuneralCommission      = "عمولة صرف نفقات الجنازة"
	labelSeveranceCommission    = "عمولة صرف منحة قطع المعاش"
	labelCompensationCommission = "عمولة صرف التعويض"
)

// Calculate validates form and produces the settlement for its dues type.
// Invalid input yields a *ValidationError or *LawScopeError; a progression
// that cannot be built yields ErrNoProgressionData.
func (ce *CalculationEngine) Calculate(form *domain.InsuranceDuesFormData, set *domain.TableSet) (*domain.CalculationResultData, error) {
	in, err := parseSettlementInput(form, ce.now())
	if err != nil {
		ce.Logger.Debugf("calculate: rejected input: %v", err)
		return nil, err
	}

	data := ce.Progression(in.progressionInput(), set)
	if data.IsEmpty() {
		ce.Logger.Errorf("calculate: no progression for law %s entitlement %s", in.law, dateutil.MonthKey(in.entitlement))
		return nil, ErrNoProgressionData
	}

	r := newResult(in, data)
	switch form.DuesType {
	case domain.DuesPeriodic:
		ce.calculatePeriodic(in, data, r)
	case domain.DuesInheritance:
		if form.NoBeneficiaries {
			ce.calculateCompensation(in, data, r)
		} else {
			ce.calculateInheritance(in, data, r)
		}
	case domain.DuesBeneficiaryArrears:
		ce.calculateBeneficiaryArrears(in, data, r)
	case domain.DuesSeverance:
		ce.calculateSeverance(in, data, r)
	}
	r.finalize()

	ce.Logger.Infof("calculate: %s %s entitlements=%s deductions=%s net=%s",
		in.law, form.DuesType, r.TotalEntitlements.StringFixed(2), r.TotalDeductions.StringFixed(2), r.NetPayable.StringFixed(2))
	return r.CalculationResultData, nil
}

// result wraps the settlement under construction.
type result struct {
	*domain.CalculationResultData
}

func newResult(in *settlementInput, data domain.ProgressionData) *result {
	r := &result{&domain.CalculationResultData{
		LawType:  in.law,
		DuesType: in.form.DuesType,
		AsOf:     in.asOf,
	}}
	r.note("bonus table: " + data.Summary.BonusTableName)
	return r
}

func (r *result) entitle(label string, amount decimal.Decimal) {
	r.Entitlements = append(r.Entitlements, domain.LineItem{Label: label, Amount: amount.Round(2)})
}

func (r *result) deduct(label string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	r.Deductions = append(r.Deductions, domain.LineItem{Label: label, Amount: amount.Round(2)})
}

func (r *result) applyDeductions(o deductionOutcome) {
	for _, l := range o.lines {
		r.deduct(l.Label, l.Amount)
	}
	if w := o.warning(); w != "" {
		r.Warnings = append(r.Warnings, w)
	}
}

func (r *result) note(s string) { r.Notes = append(r.Notes, s) }

// finalize computes the totals; the net payable never goes below zero.
func (r *result) finalize() {
	r.TotalEntitlements = zero
	for _, l := range r.Entitlements {
		r.TotalEntitlements = r.TotalEntitlements.Add(l.Amount)
	}
	r.TotalDeductions = zero
	for _, l := range r.Deductions {
		r.TotalDeductions = r.TotalDeductions.Add(l.Amount)
	}
	r.NetPayable = decimal.Max(zero, r.TotalEntitlements.Sub(r.TotalDeductions))
}

// calculatePeriodic reports the monthly amount payable at the as-of month.
func (ce *CalculationEngine) calculatePeriodic(in *settlementInput, data domain.ProgressionData, r *result) {
	month := in.asOf
	pb := &domain.PeriodicBreakdown{
		Date:              month,
		Pension:           PensionAt(month, data, false),
		MonthlyGrant:      monthlyGrant(month),
		ExceptionalGrants: sumGrants(ApplicableExceptionalGrants(in.entitlement, month)),
	}
	pb.Total = pb.Pension.Add(pb.MonthlyGrant).Add(pb.ExceptionalGrants)
	r.Periodic = pb

	r.entitle(labelPension, pb.Pension)
	if pb.MonthlyGrant.IsPositive() {
		r.entitle(labelMonthlyGrant, pb.MonthlyGrant)
	}
	if pb.ExceptionalGrants.IsPositive() {
		r.entitle(labelExceptionalGrants, pb.ExceptionalGrants)
	}

	o := applyDeductions(in.deductions, pb.Total)
	r.applyDeductions(o)
	r.deduct(labelMonthlyCommission, monthlyCommission(month, in.variant, in.hasVariable(), pb.Total))
}

// addArrears accumulates the arrears periods into r and returns their gross total.
func addArrears(in *settlementInput, data domain.ProgressionData, r *result) (gross, commission decimal.Decimal) {
	breakdowns, totals := accumulateArrears(in, data)
	r.ArrearsBreakdown = breakdowns
	r.entitle(labelPensionArrears, totals.pension)
	if totals.grant.IsPositive() {
		r.entitle(labelGrantArrears, totals.grant)
	}
	if totals.exceptional.IsPositive() {
		r.entitle(labelExceptionalArrears, totals.exceptional)
	}
	return totals.gross(), totals.commission
}

// calculateInheritance settles arrears owed to heirs plus the death grant
// and funeral expenses. Deductions come out of the arrears first, then the
// death grant, then the funeral expenses.
func (ce *CalculationEngine) calculateInheritance(in *settlementInput, data domain.ProgressionData, r *result) {
	gross, arrearsCommission := addArrears(in, data, r)

	pensionAtDeath := PensionAt(dateutil.MonthStart(in.death), data, false)
	funeral, deathGrant := deathGrants(in.variant, in.death, pensionAtDeath)
	if deathGrant.IsPositive() {
		r.entitle(labelDeathGrant, deathGrant)
	}
	r.entitle(labelFuneral, funeral)

	o := applyDeductions(in.deductions, gross, deathGrant, funeral)
	r.applyDeductions(o)
	r.deduct(labelArrearsCommission, arrearsCommission)
	r.deduct(labelDeathCommission, calculateCommission(o.remaining(1, deathGrant), in.death))
	r.deduct(labelFuneralCommission, calculateCommission(o.remaining(2, funeral), in.death))
}

// calculateBeneficiaryArrears settles arrears owed to a beneficiary.
func (ce *CalculationEngine) calculateBeneficiaryArrears(in *settlementInput, data domain.ProgressionData, r *result) {
	gross, commission := addArrears(in, data, r)
	r.applyDeductions(applyDeductions(in.deductions, gross))
	r.deduct(labelArrearsCommission, commission)
}

var (
	deathGrantFloor   = decimal.NewFromInt(200)
	law112FuneralFlat = decimal.NewFromInt(20)
	three             = decimal.NewFromInt(3)
)

// deathGrants returns the funeral expenses and the death grant for a death
// on date given the pension in force that month.
func deathGrants(variant domain.LawVariant, death time.Time, pension decimal.Decimal) (funeral, grant decimal.Decimal) {
	if !death.Before(law148Effective) {
		return pension.Mul(three).Round(2), pension.Mul(three).Round(2)
	}
	if variant == domain.Law112 {
		return law112FuneralFlat, zero
	}
	return decimal.Max(pension.Mul(two), deathGrantFloor).Round(2),
		decimal.Max(pension.Mul(three), deathGrantFloor).Round(2)
}
