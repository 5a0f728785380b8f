package output

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PensionerInfo identifies whose dues a report covers.
type PensionerInfo struct {
	Name            string          `json:"name,omitempty"`
	NationalID      string          `json:"nationalId,omitempty"`
	InsuranceNumber string          `json:"insuranceNumber,omitempty"`
	LawType         domain.LawType  `json:"lawType"`
	LawName         string          `json:"lawName"`
	EntitlementDate time.Time       `json:"entitlementDate"`
	DeathDate       *time.Time      `json:"deathDate,omitempty"`
	DuesType        domain.DuesType `json:"duesType,omitempty"`
	DuesLabel       string          `json:"duesLabel,omitempty"`
	BonusTable      string          `json:"bonusTable,omitempty"`
}

// SummaryLine is one headline figure.
type SummaryLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Report is the presentation model every formatter renders.
type Report struct {
	GeneratedAt time.Time                     `json:"generatedAt"`
	Pensioner   PensionerInfo                 `json:"pensioner"`
	Summary     []SummaryLine                 `json:"summary"`
	Progression domain.ProgressionData        `json:"progression"`
	Settlement  *domain.CalculationResultData `json:"settlement,omitempty"`
	Assumptions []string                      `json:"assumptions,omitempty"`
}

// HasSettlement reports whether the report carries a settlement.
func (r *Report) HasSettlement() bool { return r.Settlement != nil }

var duesLabels = map[domain.DuesType]string{
	domain.DuesPeriodic:           "معاش دوري",
	domain.DuesInheritance:        "مستحقات ورثة",
	domain.DuesBeneficiaryArrears: "متجمد مستحقين",
	domain.DuesSeverance:          "منحة قطع المعاش",
}

// BuildReport maps a form, its progression and an optional settlement into
// the pensioner-info / summary / breakdown shape used for display.
func BuildReport(form *domain.InsuranceDuesFormData, progression domain.ProgressionData, settlement *domain.CalculationResultData) *Report {
	r := &Report{
		GeneratedAt: time.Now().UTC(),
		Progression: progression,
		Settlement:  settlement,
		Assumptions: DefaultAssumptions,
	}
	s := progression.Summary
	r.Pensioner = PensionerInfo{
		LawType:         s.LawType,
		LawName:         s.LawType.DisplayName(),
		EntitlementDate: s.EntitlementDate,
		BonusTable:      s.BonusTableName,
	}
	if form != nil {
		r.Pensioner.Name = form.PensionerName
		r.Pensioner.NationalID = form.NationalID
		r.Pensioner.InsuranceNumber = form.InsuranceNumber
		r.Pensioner.DuesType = form.DuesType
		r.Pensioner.DuesLabel = duesLabels[form.DuesType]
		if form.LawType != "" && r.Pensioner.LawType == "" {
			r.Pensioner.LawType = form.LawType
			r.Pensioner.LawName = form.LawType.DisplayName()
		}
		if death, ok := dateutil.ParseDate(form.DeathDate); ok {
			r.Pensioner.DeathDate = &death
		}
	}

	if !progression.IsEmpty() {
		r.Summary = append(r.Summary,
			SummaryLine{Label: "المعاش عند الاستحقاق", Amount: s.InitialPension},
			SummaryLine{Label: "إجمالي العلاوات", Amount: s.TotalBonuses},
			SummaryLine{Label: "إجمالي رفع الحد الأدنى", Amount: s.TotalMinimumUplifts},
			SummaryLine{Label: "المعاش الحالي", Amount: s.CurrentPension},
		)
		if s.ExceptionalGrantsTotal.IsPositive() {
			r.Summary = append(r.Summary, SummaryLine{Label: "المنح الاستثنائية", Amount: s.ExceptionalGrantsTotal})
		}
	}
	if settlement != nil {
		r.Summary = append(r.Summary,
			SummaryLine{Label: "إجمالي المستحقات", Amount: settlement.TotalEntitlements},
			SummaryLine{Label: "إجمالي الاستقطاعات", Amount: settlement.TotalDeductions},
			SummaryLine{Label: "صافي المستحق", Amount: settlement.NetPayable},
		)
	}
	return r
}

var numberPrinter = message.NewPrinter(language.English)

// FormatCurrency formats a decimal as Egyptian pounds with grouped digits
func FormatCurrency(amount decimal.Decimal) string {
	return numberPrinter.Sprintf("%.2f", amount.Round(2).InexactFloat64()) + " EGP"
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatMonth renders a date as MM/YYYY.
func FormatMonth(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateutil.FormatForDisplay(dateutil.MonthKey(t))
}

// FormatDay renders a date as DD/MM/YYYY.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateutil.FormatForDisplay(dateutil.DayKey(t))
}
