package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#626262")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle  = lipgloss.NewStyle().Width(labelWidth)
	amountStyle = lipgloss.NewStyle().Width(amountWidth).Align(lipgloss.Right)
	totalStyle  = lipgloss.NewStyle().Bold(true)
)

const (
	labelWidth  = 48
	amountWidth = 14
)

// numberFormats are humanize patterns per locale: Greek groups with "." and uses "," for decimals
var numberFormats = map[string]string{
	"el": "#.###,##",
	"en": "#,###.##",
}

// TableFormatter renders a console report for people
type TableFormatter struct{}

func (t TableFormatter) Name() string { return "table" }

func (t TableFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer
	amount := func(d decimal.Decimal) string { return FormatAmount(d, result.Locale) }

	fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("%s %d", label(result, "year"), result.Year)))
	fmt.Fprintln(&buf, mutedStyle.Render(strings.Repeat("=", labelWidth+amountWidth)))

	for _, cat := range result.Categories {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, headerStyle.Render(cat.Label))
		rows := []struct {
			field string
			value decimal.Decimal
			show  bool
		}{
			{"gross_income", cat.GrossIncome, cat.Category.IsIncome()},
			{"contributions", cat.Contributions, !cat.Contributions.IsZero()},
			{"taxable_income", cat.TaxableIncome, cat.Category.IsIncome()},
			{"tax_before_credits", cat.TaxBeforeCredits, len(cat.Brackets) > 0},
			{"credits", cat.Credits, !cat.Credits.IsZero()},
			{"tax", cat.Tax, cat.Category.IsIncome()},
			{"trade_fee", cat.TradeFee, !cat.TradeFee.IsZero()},
		}
		for _, r := range rows {
			if r.show {
				writeRow(&buf, label(result, r.field), amount(r.value), labelStyle)
			}
		}
		for _, item := range cat.Items {
			writeRow(&buf, "  "+item.Label, amount(item.Tax), mutedStyle.Width(labelWidth))
		}
		writeRow(&buf, label(result, "total_tax"), amount(cat.TotalTax), totalStyle.Width(labelWidth))
		writeRow(&buf, label(result, "net_income"), amount(cat.NetIncome), labelStyle)
	}

	s := result.Summary
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, mutedStyle.Render(strings.Repeat("-", labelWidth+amountWidth)))
	writeRow(&buf, label(result, "income_total"), amount(s.IncomeTotal), totalStyle.Width(labelWidth))
	writeRow(&buf, label(result, "tax_total"), amount(s.TaxTotal), totalStyle.Width(labelWidth))
	writeRow(&buf, label(result, "net_income"), amount(s.NetIncome), totalStyle.Width(labelWidth))
	writeRow(&buf, label(result, "net_monthly_income"), amount(s.NetMonthlyIncome), labelStyle)
	writeRow(&buf, label(result, "effective_tax_rate"), FormatPercent(s.EffectiveTaxRate, result.Locale), labelStyle)

	return buf.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, name, value string, style lipgloss.Style) {
	fmt.Fprintln(buf, lipgloss.JoinHorizontal(lipgloss.Top, style.Render(name), amountStyle.Render(value)))
}

// FormatAmount renders a currency amount with locale grouping and a euro sign
func FormatAmount(d decimal.Decimal, locale string) string {
	return formatNumber(d, locale) + " €"
}

// FormatPercent renders a ratio as a percentage
func FormatPercent(ratio decimal.Decimal, locale string) string {
	return formatNumber(ratio.Mul(decimal.NewFromInt(100)), locale) + "%"
}

func formatNumber(d decimal.Decimal, locale string) string {
	format, ok := numberFormats[locale]
	if !ok {
		format = numberFormats["en"]
	}
	f, _ := d.Round(domain.MoneyPlaces).Float64()
	return humanize.FormatFloat(format, f)
}
