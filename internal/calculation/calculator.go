package calculation

import (
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SharedContext carries the request-wide inputs every calculator may read
type SharedContext struct {
	Dependents int
	Locale     string
	Label      domain.LabelFunc
}

func (sc *SharedContext) label(key string) string {
	if sc == nil || sc.Label == nil {
		return key
	}
	return sc.Label(key, sc.Locale)
}

// CategoryCalculator computes one category's result from its declaration slice.
// Implementations fail only with ConfigInvalid; numeric edge cases are clamped.
type CategoryCalculator interface {
	Category() domain.CategoryID
	Compute(decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error)
}

// DefaultCalculators returns one calculator per supported category
func DefaultCalculators() []CategoryCalculator {
	return []CategoryCalculator{
		NewSalaryCalculator(domain.CategoryEmployment),
		NewSalaryCalculator(domain.CategoryPension),
		&FreelanceCalculator{},
		&RentalCalculator{},
		&AgriculturalCalculator{},
		&InvestmentCalculator{},
		&OtherCalculator{},
		&ObligationsCalculator{},
	}
}

// breakdown holds a category's unrounded working values until emission
type breakdown struct {
	category         domain.CategoryID
	gross            decimal.Decimal
	expenses         decimal.Decimal
	contributions    decimal.Decimal
	taxable          decimal.Decimal
	taxBeforeCredits decimal.Decimal
	credits          decimal.Decimal
	tax              decimal.Decimal
	tradeFee         decimal.Decimal
	brackets         []domain.BracketAmount
	items            []domain.LineItem
}

func (b *breakdown) totalTax() decimal.Decimal {
	return b.tax.Add(b.tradeFee)
}

// netIncome is what the taxpayer keeps from this category after its own costs and taxes
func (b *breakdown) netIncome() decimal.Decimal {
	return b.gross.Sub(b.expenses).Sub(b.contributions).Sub(b.totalTax())
}

// emit rounds every figure exactly once and builds the result value
func (b *breakdown) emit(sc *SharedContext) domain.CategoryResult {
	result := domain.CategoryResult{
		Category:         b.category,
		Label:            sc.label(domain.LabelCategoryPrefix + string(b.category)),
		GrossIncome:      domain.RoundMoney(b.gross),
		TaxableIncome:    domain.RoundMoney(b.taxable),
		TaxBeforeCredits: domain.RoundMoney(b.taxBeforeCredits),
		Credits:          domain.RoundMoney(b.credits),
		Tax:              domain.RoundMoney(b.tax),
		TradeFee:         domain.RoundMoney(b.tradeFee),
		TotalTax:         domain.RoundMoney(b.totalTax()),
		NetIncome:        domain.RoundMoney(b.netIncome()),
		Contributions:    domain.RoundMoney(b.contributions),
	}
	for _, ba := range b.brackets {
		result.Brackets = append(result.Brackets, domain.BracketAmount{
			Lower:  ba.Lower,
			Upper:  ba.Upper,
			Rate:   ba.Rate,
			Amount: domain.RoundMoney(ba.Amount),
			Tax:    domain.RoundMoney(ba.Tax),
		})
	}
	for _, item := range b.items {
		item.Amount = domain.RoundMoney(item.Amount)
		item.Tax = domain.RoundMoney(item.Tax)
		result.Items = append(result.Items, item)
	}
	return result
}

// applyProgressive taxes b.taxable on a bracket table and subtracts the category's credit.
// The credit granted never exceeds the tax it offsets, so zero income earns zero credit.
func applyProgressive(b *breakdown, brackets []domain.Bracket, rules domain.CategoryRules, yc *domain.YearConfiguration, dependents int) error {
	if len(brackets) == 0 {
		return domain.ConfigInvalidf(yc.Year, b.category, "no bracket table")
	}
	b.taxBeforeCredits, b.brackets = EvaluateBrackets(b.taxable, brackets)

	b.credits = decimal.Zero
	if rules.CreditLadder != "" {
		ladder, ok := yc.Ladder(rules.CreditLadder)
		if !ok {
			return domain.ConfigInvalidf(yc.Year, b.category, "credit ladder %q is not defined", rules.CreditLadder)
		}
		credit := NewCreditLadder(ladder).CreditFor(dependents, b.taxable, ladder.PhaseOutApplies(b.category))
		b.credits = decimal.Min(credit, b.taxBeforeCredits)
	}
	b.tax = domain.Clamp(b.taxBeforeCredits.Sub(b.credits))
	return nil
}

// capExpenses applies a category's deduction caps and returns the deductible amount
func capExpenses(gross, expenses decimal.Decimal, caps *domain.DeductionCaps) decimal.Decimal {
	if caps == nil {
		return expenses
	}
	deductible := expenses
	if caps.ExpenseCap != nil && deductible.GreaterThan(*caps.ExpenseCap) {
		deductible = *caps.ExpenseCap
	}
	return deductible.Add(gross.Mul(caps.StandardRate))
}
