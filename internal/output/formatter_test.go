package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleResult(locale string) *domain.CalculationResult {
	return &domain.CalculationResult{
		Year:   2026,
		Locale: locale,
		Categories: []domain.CategoryResult{
			{
				Category:         domain.CategoryEmployment,
				Label:            "Employment income",
				GrossIncome:      d("30000"),
				TaxableIncome:    d("26000"),
				TaxBeforeCredits: d("4660"),
				Credits:          d("497"),
				Tax:              d("4163"),
				TradeFee:         d("0"),
				TotalTax:         d("4163"),
				NetIncome:        d("21837"),
				Contributions:    d("4000"),
			},
			{
				Category:  domain.CategoryObligations,
				Label:     "Property and luxury taxes",
				Tax:       d("1234.5"),
				TotalTax:  d("1234.5"),
				NetIncome: d("-1234.5"),
				Items: []domain.LineItem{
					{Key: "enfia", Label: "ENFIA", Amount: d("1234.5"), Tax: d("1234.5")},
				},
			},
		},
		Summary: domain.Summary{
			IncomeTotal:      d("30000"),
			TaxTotal:         d("5397.5"),
			NetIncome:        d("24602.5"),
			NetMonthlyIncome: d("2050.21"),
			EffectiveTaxRate: d("0.1799"),
		},
		Labels: map[string]string{
			"year":      "Tax year",
			"total_tax": "Total tax",
			"tax_total": "Total tax (all)",
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"json", "csv", "table", " TABLE "} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(name)), f.Name())
	}
	assert.Nil(t, GetFormatterByName("html"))
	assert.Equal(t, []string{"json", "csv", "table"}, FormatterNames())
}

func TestJSONFormatter_FieldNames(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResult("en"))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	summary := raw["summary"].(map[string]interface{})
	for _, field := range []string{"income_total", "tax_total", "net_income", "net_monthly_income", "effective_tax_rate"} {
		assert.Contains(t, summary, field)
	}
	category := raw["categories"].([]interface{})[0].(map[string]interface{})
	for _, field := range []string{"gross_income", "taxable_income", "tax_before_credits", "credits", "tax", "trade_fee", "total_tax", "net_income"} {
		assert.Contains(t, category, field)
	}
	obligations := raw["categories"].([]interface{})[1].(map[string]interface{})
	assert.Contains(t, obligations, "items")
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleResult("en"))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"2026", "employment", "30000.00", "26000.00", "4660.00", "497.00", "4163.00", "0.00", "4163.00", "21837.00", "4000.00"}, rows[1])
	assert.Equal(t, "-1234.50", rows[2][9])
	assert.Equal(t, "total", rows[3][1])
	assert.Equal(t, "5397.50", rows[3][8])
}

func TestTableFormatter(t *testing.T) {
	data, err := TableFormatter{}.Format(sampleResult("en"))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Tax year 2026")
	assert.Contains(t, out, "Employment income")
	assert.Contains(t, out, "30,000.00 €")
	assert.Contains(t, out, "ENFIA")
	assert.Contains(t, out, "Total tax (all)")
	assert.Contains(t, out, "17.99%")
	assert.Contains(t, out, "gross_income", "fields without a label fall back to the field name")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234,567.89 €", FormatAmount(d("1234567.891"), "en"))
	assert.Equal(t, "1.234.567,89 €", FormatAmount(d("1234567.891"), "el"))
	assert.Equal(t, "0.00 €", FormatAmount(d("0"), "fr"))
	assert.Equal(t, "-1,234.50 €", FormatAmount(d("-1234.5"), "en"))
	assert.Equal(t, "33,33%", FormatPercent(d("0.3333"), "el"))
}
