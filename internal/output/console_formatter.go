package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/egpension/internal/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	netStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#059669"))
)

// ConsoleFormatter renders the detailed console report: pensioner info,
// summary, the full progression and the settlement breakdown.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, headingStyle.Render("PENSION DUES REPORT"))
	fmt.Fprintln(&buf, rule)
	writePensioner(&buf, r.Pensioner)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("SUMMARY"))
	for _, s := range r.Summary {
		fmt.Fprintf(&buf, "  %-28s %18s\n", s.Label, FormatCurrency(s.Amount))
	}
	fmt.Fprintln(&buf)

	writeProgression(&buf, r.Progression)

	if r.HasSettlement() {
		writeSettlement(&buf, r.Settlement)
	}

	if len(r.Assumptions) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("RULES APPLIED"))
		for _, a := range r.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

func writePensioner(buf *bytes.Buffer, p PensionerInfo) {
	if p.Name != "" {
		fmt.Fprintf(buf, "Pensioner:        %s\n", p.Name)
	}
	if p.NationalID != "" {
		fmt.Fprintf(buf, "National ID:      %s\n", p.NationalID)
	}
	if p.InsuranceNumber != "" {
		fmt.Fprintf(buf, "Insurance number: %s\n", p.InsuranceNumber)
	}
	fmt.Fprintf(buf, "Law:              %s\n", p.LawName)
	fmt.Fprintf(buf, "Entitlement:      %s\n", FormatMonth(p.EntitlementDate))
	if p.DeathDate != nil {
		fmt.Fprintf(buf, "Death date:       %s\n", FormatDay(*p.DeathDate))
	}
	if p.DuesType != "" {
		fmt.Fprintf(buf, "Dues:             %s (%s)\n", p.DuesLabel, p.DuesType)
	}
	if p.BonusTable != "" {
		fmt.Fprintf(buf, "Bonus table:      %s\n", p.BonusTable)
	}
}

func writeProgression(buf *bytes.Buffer, data domain.ProgressionData) {
	fmt.Fprintln(buf, sectionStyle.Render("PENSION PROGRESSION"))
	if data.IsEmpty() {
		fmt.Fprintln(buf, "  no progression data")
		fmt.Fprintln(buf)
		return
	}
	fmt.Fprintf(buf, "%-8s %-18s %14s %8s %12s %12s %14s\n",
		"Date", "Kind", "Before", "Bonus%", "Bonus", "Min uplift", "After")
	fmt.Fprintln(buf, strings.Repeat("-", 92))
	for _, s := range data.Steps {
		pct := ""
		if s.BonusPercentage != nil {
			pct = FormatPercentage(*s.BonusPercentage)
		}
		fmt.Fprintf(buf, "%-8s %-18s %14s %8s %12s %12s %14s\n",
			FormatMonth(s.Date), s.Kind,
			s.PensionBefore.StringFixed(2), pct,
			s.BonusAmount.StringFixed(2), s.MinUplift.StringFixed(2),
			s.PensionAfter.StringFixed(2))
	}
	for _, g := range data.Summary.ExceptionalGrants {
		fmt.Fprintf(buf, "+ %s %s: %s\n", FormatMonth(g.EffectiveDate), g.Description, FormatCurrency(g.Amount))
	}
	fmt.Fprintln(buf)
}

func writeSettlement(buf *bytes.Buffer, res *domain.CalculationResultData) {
	fmt.Fprintln(buf, sectionStyle.Render("SETTLEMENT"))
	fmt.Fprintf(buf, "As of: %s\n", FormatMonth(res.AsOf))

	if len(res.ArrearsBreakdown) > 0 {
		fmt.Fprintln(buf, "Arrears by period:")
		for _, p := range res.ArrearsBreakdown {
			fmt.Fprintf(buf, "  #%d %s - %s @ %s: %d months, pension %s, grant %s, exceptional %s, commission %s, total %s\n",
				p.Index+1, FormatMonth(p.Start), FormatMonth(p.End), FormatPercentage(p.Percentage), p.Months,
				p.PensionArrears.StringFixed(2), p.MonthlyGrantArrears.StringFixed(2),
				p.ExceptionalGrantArrears.StringFixed(2), p.Commission.StringFixed(2), p.Total.StringFixed(2))
		}
	}
	if p := res.Periodic; p != nil {
		fmt.Fprintf(buf, "Monthly pension at %s: %s + grant %s + exceptional %s = %s\n",
			FormatMonth(p.Date), p.Pension.StringFixed(2), p.MonthlyGrant.StringFixed(2),
			p.ExceptionalGrants.StringFixed(2), FormatCurrency(p.Total))
	}

	fmt.Fprintln(buf, "Entitlements:")
	for _, l := range res.Entitlements {
		fmt.Fprintf(buf, "  %-36s %18s\n", l.Label, FormatCurrency(l.Amount))
	}
	fmt.Fprintln(buf, "Deductions:")
	for _, l := range res.Deductions {
		fmt.Fprintf(buf, "  %-36s %18s\n", l.Label, FormatCurrency(l.Amount))
	}
	fmt.Fprintf(buf, "Total entitlements: %s\n", FormatCurrency(res.TotalEntitlements))
	fmt.Fprintf(buf, "Total deductions:   %s\n", FormatCurrency(res.TotalDeductions))
	fmt.Fprintln(buf, netStyle.Render("Net payable:        "+FormatCurrency(res.NetPayable)))
	for _, w := range res.Warnings {
		fmt.Fprintln(buf, warningStyle.Render("WARNING: "+w))
	}
	for _, n := range res.Notes {
		fmt.Fprintf(buf, "Note: %s\n", n)
	}
	fmt.Fprintln(buf)
}

// ConsoleLiteFormatter prints only the headline figures.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PENSION SUMMARY: %s, entitled %s\n", r.Pensioner.LawName, FormatMonth(r.Pensioner.EntitlementDate))
	for _, s := range r.Summary {
		fmt.Fprintf(&buf, "%s: %s\n", s.Label, FormatCurrency(s.Amount))
	}
	if r.HasSettlement() {
		for _, w := range r.Settlement.Warnings {
			fmt.Fprintf(&buf, "WARNING: %s\n", w)
		}
	}
	return buf.Bytes(), nil
}
