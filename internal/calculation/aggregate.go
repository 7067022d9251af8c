package calculation

import (
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(domain.MonthsPerYear)

// Combine aggregates emitted category results into the summary.
// Totals are sums of already-rounded figures, so the sum of every category's total tax equals
// the summary tax total exactly. Net income is derived from the totals rather than from each
// category's own net figure, which would count obligations twice.
func Combine(results []domain.CategoryResult) domain.Summary {
	incomeTotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, r := range results {
		if r.Category.IsIncome() {
			incomeTotal = incomeTotal.Add(r.GrossIncome)
		}
		taxTotal = taxTotal.Add(r.TotalTax)
	}

	netIncome := incomeTotal.Sub(taxTotal)
	effectiveRate := decimal.Zero
	if incomeTotal.IsPositive() {
		effectiveRate = taxTotal.Div(incomeTotal)
	}

	return domain.Summary{
		IncomeTotal:      incomeTotal,
		TaxTotal:         taxTotal,
		NetIncome:        netIncome,
		NetMonthlyIncome: domain.RoundMoney(netIncome.Div(monthsPerYear)),
		EffectiveTaxRate: domain.RoundRate(effectiveRate),
	}
}
