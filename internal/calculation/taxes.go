package calculation

import (
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateBrackets applies a progressive marginal table to taxable income.
// It returns the tax before credits and the slice taxed in each bracket reached.
// Income at or below zero yields zero tax and an empty breakdown.
func EvaluateBrackets(taxableIncome decimal.Decimal, brackets []domain.Bracket) (decimal.Decimal, []domain.BracketAmount) {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	totalTax := decimal.Zero
	var amounts []domain.BracketAmount
	for _, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Lower) {
			break
		}
		top := taxableIncome
		if !bracket.IsOpen() && bracket.Upper.LessThan(top) {
			top = *bracket.Upper
		}
		incomeInBracket := top.Sub(bracket.Lower)
		if incomeInBracket.LessThanOrEqual(decimal.Zero) {
			continue
		}
		tax := incomeInBracket.Mul(bracket.Rate)
		totalTax = totalTax.Add(tax)
		amounts = append(amounts, domain.BracketAmount{
			Lower:  bracket.Lower,
			Upper:  bracket.Upper,
			Rate:   bracket.Rate,
			Amount: incomeInBracket,
			Tax:    tax,
		})
		if bracket.IsOpen() {
			break
		}
	}

	return totalTax, amounts
}
