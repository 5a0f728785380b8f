package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Statutory cutover dates.
var (
	// Law 148/2019 took effect and replaced every earlier law.
	law148Effective = dateutil.Date(2020, 1, 1)
	// The 2010 uplift reform.
	upliftEffective = dateutil.Date(2010, 7, 1)
	// Law 79 bonuses are computed on the whole pension from here on.
	law79TotalBaseFrom = dateutil.Date(2011, 4, 1)
	// The minimum-pension floor is enforced on bonus steps from here on.
	minimumFloorFrom = dateutil.Date(2016, 7, 1)
	// Law 30/1992 addition window start.
	law30Effective = dateutil.Date(1992, 7, 1)
	// Entitlements before this date carry cross-table references.
	referencesBefore = dateutil.Date(2008, 5, 1)
	// Law 79 disbursement commission rises for variable pensions from here on.
	law79CommissionChange = dateutil.Date(2014, 2, 1)
	// Special uplift (decree 134) absolute floor for Law 112 and Sadat pensions.
	specialUplift134Date = dateutil.Date(2014, 7, 1)
)

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero

	upliftRate          = decimal.NewFromFloat(0.33)
	law30Rate           = decimal.NewFromFloat(0.25)
	law30Min            = decimal.NewFromInt(20)
	law30Max            = decimal.NewFromInt(35)
	law148UpliftBase    = decimal.NewFromInt(450)
	specialUplift134    = decimal.NewFromInt(323)
	severanceMaxPercent = decimal.NewFromFloat(66.67)
)

// lawWindow is the [From, Until) range of entitlement dates a law governs.
// A zero Until means open-ended.
type lawWindow struct {
	From  time.Time
	Until time.Time
}

var lawWindows = map[domain.LawType]lawWindow{
	domain.LawType79:    {From: dateutil.Date(1975, 9, 1), Until: law148Effective},
	domain.LawType108:   {From: dateutil.Date(1976, 10, 1), Until: law148Effective},
	domain.LawType112:   {From: dateutil.Date(1981, 7, 1), Until: law148Effective},
	domain.LawTypeSadat: {From: dateutil.Date(1980, 7, 1), Until: law148Effective},
	domain.LawType148:   {From: law148Effective},
}

// checkLawScope rejects entitlement dates outside the law's operative window.
func checkLawScope(law domain.LawType, entitlement time.Time) error {
	w, ok := lawWindows[law]
	if !ok {
		return ErrUnknownLaw
	}
	if entitlement.Before(w.From) {
		return &LawScopeError{Law: law, Date: entitlement,
			Reason: "the law was not yet in force (effective " + dateutil.MonthKey(w.From) + ")"}
	}
	if !w.Until.IsZero() && !entitlement.Before(w.Until) {
		return &LawScopeError{Law: law, Date: entitlement, Applicable: domain.LawType148,
			Reason: "superseded by Law 148/2019"}
	}
	return nil
}

// Uplift constants per entitlement band. The bands are: before 2010-07,
// before 2011-07, before 2012-07, before 2013-07, before 2014-01, later.
var upliftBandEnds = []time.Time{
	dateutil.Date(2010, 7, 1),
	dateutil.Date(2011, 7, 1),
	dateutil.Date(2012, 7, 1),
	dateutil.Date(2013, 7, 1),
	dateutil.Date(2014, 1, 1),
}

var upliftConstants = map[domain.LawVariant][]int64{
	domain.Law79:  {200, 250, 300, 350, 400, 450},
	domain.Law108: {150, 175, 200, 225, 250, 300},
	domain.Law112: {25, 30, 35, 40, 45, 50},
}

func upliftBand(entitlement time.Time) int {
	for i, end := range upliftBandEnds {
		if entitlement.Before(end) {
			return i
		}
	}
	return len(upliftBandEnds)
}

// upliftDate is when the uplift lands: the reform date, or the entitlement
// when that is later.
func upliftDate(entitlement time.Time) time.Time {
	if entitlement.Before(upliftEffective) {
		return upliftEffective
	}
	return entitlement
}

// upliftAmount computes the uplift for Laws 79, 108 and 112. Laws 79 and 108
// top the pension up to a band constant less a third of the pension already
// reached, floored at zero. Law 112 adds the band constant flat.
func upliftAmount(variant domain.LawVariant, entitlement time.Time, pensionBefore decimal.Decimal) decimal.Decimal {
	c := decimal.NewFromInt(upliftConstants[variant][upliftBand(entitlement)])
	if variant == domain.Law112 {
		return c
	}
	return decimal.Max(zero, c.Sub(pensionBefore.Mul(upliftRate))).Round(2)
}

// law148Uplift is max(0, 450 - basic*0.33).
func law148Uplift(basic decimal.Decimal) decimal.Decimal {
	return decimal.Max(zero, law148UpliftBase.Sub(basic.Mul(upliftRate))).Round(2)
}

// law30Applies reports whether a Law 79/108 entitlement earns the Law 30/1992 addition.
func law30Applies(entitlement time.Time) bool {
	return !entitlement.Before(law30Effective) && entitlement.Before(law148Effective)
}

// law30Addition is a quarter of the normal basic pension, clamped to [20, 35].
func law30Addition(normalBasic decimal.Decimal) decimal.Decimal {
	return clamp(normalBasic.Mul(law30Rate), law30Min, law30Max).Round(2)
}

// clamp limits v to [lo, hi]. A zero hi means no upper bound.
func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if hi.IsPositive() && v.GreaterThan(hi) {
		return hi
	}
	return v
}

// minimumTopUp is the amount needed to lift pension to floor.
func minimumTopUp(pension, floor decimal.Decimal) decimal.Decimal {
	if pension.LessThan(floor) {
		return floor.Sub(pension)
	}
	return zero
}

// bonusExceptionWindows let entitlements that fall shortly after a bonus
// date still receive that bonus, dated at the entitlement.
var bonusExceptionWindows = []struct {
	bonus           time.Time
	lastEntitlement time.Time
}{
	{dateutil.Date(2022, 4, 1), dateutil.Date(2022, 6, 1)},
	{dateutil.Date(2023, 4, 1), dateutil.Date(2023, 6, 1)},
	{dateutil.Date(2024, 3, 1), dateutil.Date(2024, 6, 1)},
}

// bonusApplies reports whether a bonus dated bonusDate reaches a pension
// entitled at entitlement, and the date the resulting step carries.
func bonusApplies(bonusDate, entitlement time.Time) (time.Time, bool) {
	if bonusDate.After(entitlement) {
		return bonusDate, true
	}
	for _, w := range bonusExceptionWindows {
		if dateutil.MonthKey(bonusDate) != dateutil.MonthKey(w.bonus) {
			continue
		}
		if entitlement.After(bonusDate) && !entitlement.After(w.lastEntitlement) {
			return entitlement, true
		}
	}
	return time.Time{}, false
}

// exceptionalGrants are the one-time monthly add-ons granted by decree,
// independent of law.
var exceptionalGrants = []domain.ExceptionalGrant{
	{EffectiveDate: dateutil.Date(2022, 11, 1), Amount: decimal.NewFromInt(300), Description: "منحة استثنائية نوفمبر 2022"},
	{EffectiveDate: dateutil.Date(2023, 10, 1), Amount: decimal.NewFromInt(300), Description: "منحة استثنائية أكتوبر 2023"},
}

// ApplicableExceptionalGrants returns the grants in force at target for a
// pension entitled at entitlement: those whose effective date lies in
// (entitlement, target].
func ApplicableExceptionalGrants(entitlement, target time.Time) []domain.ExceptionalGrant {
	var out []domain.ExceptionalGrant
	for _, g := range exceptionalGrants {
		if g.EffectiveDate.After(entitlement) && !g.EffectiveDate.After(target) {
			out = append(out, g)
		}
	}
	return out
}

func sumGrants(grants []domain.ExceptionalGrant) decimal.Decimal {
	total := zero
	for _, g := range grants {
		total = total.Add(g.Amount)
	}
	return total
}

var (
	monthlyGrantFrom   = dateutil.Date(1999, 1, 1)
	monthlyGrantAmount = decimal.NewFromInt(10)
)

// monthlyGrant is the standing monthly grant in force at month.
func monthlyGrant(month time.Time) decimal.Decimal {
	if month.Before(monthlyGrantFrom) {
		return zero
	}
	return monthlyGrantAmount
}
