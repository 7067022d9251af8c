package calculation

import (
	"sort"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// InvestmentCalculator taxes each investment sub-category at its own flat rate
type InvestmentCalculator struct{}

func (c *InvestmentCalculator) Category() domain.CategoryID { return domain.CategoryInvestment }

func (c *InvestmentCalculator) Compute(decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error) {
	rules, ok := yc.Rules(domain.CategoryInvestment)
	if !ok {
		return domain.CategoryResult{}, domain.CategoryUnsupportedf(yc.Year, domain.CategoryInvestment, "no rules for this year")
	}

	b := &breakdown{category: domain.CategoryInvestment}
	for _, key := range sortedKeys(itemsOf(decl.Investment)) {
		rate, ok := rules.Rates[key]
		if !ok {
			return domain.CategoryResult{}, domain.ConfigInvalidf(yc.Year, domain.CategoryInvestment, "no rate for investment item %q", key)
		}
		amount := domain.Clamp(decl.Investment.Items[key])
		tax := amount.Mul(rate)
		b.gross = b.gross.Add(amount)
		b.tax = b.tax.Add(tax)
		b.items = append(b.items, domain.LineItem{
			Key:    key,
			Label:  sc.label(domain.LabelInvestmentPrefix + key),
			Amount: amount,
			Rate:   rate,
			Tax:    tax,
		})
	}
	b.taxable = b.gross
	b.taxBeforeCredits = b.tax
	return b.emit(sc), nil
}

// ObligationsCalculator passes flat charges such as property tax straight through.
// They count toward total tax but are not income.
type ObligationsCalculator struct{}

func (c *ObligationsCalculator) Category() domain.CategoryID { return domain.CategoryObligations }

func (c *ObligationsCalculator) Compute(decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error) {
	b := &breakdown{category: domain.CategoryObligations}
	for _, kind := range sortedKeys(itemsOf(decl.Obligations)) {
		if !yc.Obligations.Allows(kind) {
			return domain.CategoryResult{}, domain.ConfigInvalidf(yc.Year, domain.CategoryObligations, "unknown obligation %q", kind)
		}
		amount := domain.Clamp(decl.Obligations.Items[kind])
		b.tax = b.tax.Add(amount)
		b.items = append(b.items, domain.LineItem{
			Key:    kind,
			Label:  sc.label(domain.LabelObligationPrefix + kind),
			Amount: amount,
			Rate:   decimal.Zero,
			Tax:    amount,
		})
	}
	b.taxBeforeCredits = b.tax
	return b.emit(sc), nil
}

func itemsOf(d *domain.ItemizedDeclaration) map[string]decimal.Decimal {
	if d == nil {
		return nil
	}
	return d.Items
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
