package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes one row per progression step.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Date", "Kind", "Description", "PensionBefore", "BonusPercentage", "BonusAmount", "MinUplift", "PensionAfter", "References"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range r.Progression.Steps {
		pct := ""
		if s.BonusPercentage != nil {
			pct = s.BonusPercentage.String()
		}
		refs := ""
		for i, n := range s.References {
			if i > 0 {
				refs += ";"
			}
			refs += strconv.Itoa(n)
		}
		row := []string{
			FormatMonth(s.Date),
			string(s.Kind),
			s.Description,
			s.PensionBefore.StringFixed(2),
			pct,
			s.BonusAmount.StringFixed(2),
			s.MinUplift.StringFixed(2),
			s.PensionAfter.StringFixed(2),
			refs,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// SettlementCSVFormatter writes the settlement line items.
type SettlementCSVFormatter struct{}

func (c SettlementCSVFormatter) Name() string { return "settlement-csv" }

func (c SettlementCSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Label", "Amount"}); err != nil {
		return nil, err
	}
	if s := r.Settlement; s != nil {
		var rows [][]string
		for _, l := range s.Entitlements {
			rows = append(rows, []string{"entitlement", l.Label, l.Amount.StringFixed(2)})
		}
		for _, l := range s.Deductions {
			rows = append(rows, []string{"deduction", l.Label, l.Amount.StringFixed(2)})
		}
		rows = append(rows,
			[]string{"total", "total_entitlements", s.TotalEntitlements.StringFixed(2)},
			[]string{"total", "total_deductions", s.TotalDeductions.StringFixed(2)},
			[]string{"total", "net_payable", s.NetPayable.StringFixed(2)},
		)
		if err := w.WriteAll(rows); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
