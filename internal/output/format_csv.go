package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/taxcalc/internal/domain"
)

// CSVFormatter writes one row per category followed by a summary row
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"year", "category", "gross_income", "taxable_income", "tax_before_credits", "credits",
	"tax", "trade_fee", "total_tax", "net_income", "contributions",
}

func (c CSVFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	year := strconv.Itoa(result.Year)
	for _, cat := range result.Categories {
		row := []string{
			year,
			string(cat.Category),
			cat.GrossIncome.StringFixed(2),
			cat.TaxableIncome.StringFixed(2),
			cat.TaxBeforeCredits.StringFixed(2),
			cat.Credits.StringFixed(2),
			cat.Tax.StringFixed(2),
			cat.TradeFee.StringFixed(2),
			cat.TotalTax.StringFixed(2),
			cat.NetIncome.StringFixed(2),
			cat.Contributions.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	s := result.Summary
	summary := []string{
		year, "total",
		s.IncomeTotal.StringFixed(2), "", "", "", "", "",
		s.TaxTotal.StringFixed(2),
		s.NetIncome.StringFixed(2), "",
	}
	if err := w.Write(summary); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
