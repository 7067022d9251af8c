package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultTradeFeeLocation is used when a declaration includes the trade fee without a location
const DefaultTradeFeeLocation = "standard"

// DefaultContributionMonths is the insured period assumed when none is declared
const DefaultContributionMonths = 12

// FreelanceCalculator handles business and professional income
type FreelanceCalculator struct{}

func (c *FreelanceCalculator) Category() domain.CategoryID { return domain.CategoryFreelance }

// Compute taxes freelance profit and adds the trade fee on top of income tax
func (c *FreelanceCalculator) Compute(decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error) {
	rules, ok := yc.Rules(domain.CategoryFreelance)
	if !ok {
		return domain.CategoryResult{}, domain.CategoryUnsupportedf(yc.Year, domain.CategoryFreelance, "no rules for this year")
	}
	in := decl.Freelance
	if in == nil {
		in = &domain.FreelanceDeclaration{}
	}

	b := &breakdown{category: domain.CategoryFreelance}
	var profit decimal.Decimal
	if in.Profit != nil {
		b.gross = domain.Clamp(*in.Profit)
		profit = b.gross
	} else {
		b.gross = domain.Clamp(in.GrossRevenue)
		b.expenses = domain.Clamp(in.DeductibleExpenses)
		profit = domain.Clamp(b.gross.Sub(capExpenses(b.gross, b.expenses, rules.DeductionCaps)))
	}

	contributions, err := FreelanceContributions(in, rules.ContributionClasses)
	if err != nil {
		return domain.CategoryResult{}, domain.ConfigInvalidf(yc.Year, domain.CategoryFreelance, "%v", err)
	}
	b.contributions = contributions

	b.taxable = profit
	if yc.Toggle(domain.ToggleFreelanceContributionsDeductible) {
		b.taxable = domain.Clamp(profit.Sub(b.contributions))
	}

	if err := applyProgressive(b, rules.BracketsFor(sc.Dependents), rules, yc, sc.Dependents); err != nil {
		return domain.CategoryResult{}, err
	}

	fee, err := TradeFee(in.TradeFee, rules.TradeFee, yc.Year)
	if err != nil {
		return domain.CategoryResult{}, err
	}
	b.tradeFee = fee
	return b.emit(sc), nil
}

// FreelanceContributions sums the monthly class amounts over the insured months plus any
// other declared contributions. An empty class is not insured.
func FreelanceContributions(in *domain.FreelanceDeclaration, classes *domain.ContributionClasses) (decimal.Decimal, error) {
	months := in.ContributionMonths
	if months <= 0 {
		months = DefaultContributionMonths
	}

	monthly := decimal.Zero
	selections := []struct {
		kind  string
		class string
		table func(*domain.ContributionClasses) map[string]decimal.Decimal
	}{
		{"mandatory", in.MandatoryClass, func(c *domain.ContributionClasses) map[string]decimal.Decimal { return c.Mandatory }},
		{"auxiliary", in.AuxiliaryClass, func(c *domain.ContributionClasses) map[string]decimal.Decimal { return c.Auxiliary }},
		{"lump_sum", in.LumpSumClass, func(c *domain.ContributionClasses) map[string]decimal.Decimal { return c.LumpSum }},
	}
	for _, sel := range selections {
		if sel.class == "" {
			continue
		}
		if classes == nil {
			return decimal.Zero, fmt.Errorf("no %s contribution classes defined", sel.kind)
		}
		amount, ok := sel.table(classes)[sel.class]
		if !ok {
			return decimal.Zero, fmt.Errorf("no %s contribution class %q", sel.kind, sel.class)
		}
		monthly = monthly.Add(amount)
	}

	total := monthly.Mul(decimal.NewFromInt(int64(months)))
	return total.Add(domain.Clamp(in.OtherContributions)), nil
}

// TradeFee returns the flat business levy for the declared location.
// A sunset year or a taxpayer still inside the newly self-employed window pays nothing.
func TradeFee(choice domain.TradeFeeChoice, rules *domain.TradeFeeRules, year int) (decimal.Decimal, error) {
	if !choice.Include {
		return decimal.Zero, nil
	}
	if rules == nil {
		return decimal.Zero, domain.ConfigInvalidf(year, domain.CategoryFreelance, "trade fee requested but the year defines no trade fee rules")
	}
	if rules.Sunset {
		return decimal.Zero, nil
	}
	if choice.YearsActive < rules.NewlySelfEmployedYears {
		return decimal.Zero, nil
	}
	location := choice.Location
	if location == "" {
		location = DefaultTradeFeeLocation
	}
	modifier, ok := rules.LocationModifiers[location]
	if !ok {
		return decimal.Zero, domain.ConfigInvalidf(year, domain.CategoryFreelance, "no trade fee modifier for location %q", location)
	}
	return rules.BaseAmount.Mul(modifier), nil
}
