package calculation

import (
	"github.com/rgehrsitz/taxcalc/internal/domain"
)

// RentalCalculator taxes net rental income on its own bracket table
type RentalCalculator struct{}

func (c *RentalCalculator) Category() domain.CategoryID { return domain.CategoryRental }

func (c *RentalCalculator) Compute(decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error) {
	rules, ok := yc.Rules(domain.CategoryRental)
	if !ok {
		return domain.CategoryResult{}, domain.CategoryUnsupportedf(yc.Year, domain.CategoryRental, "no rules for this year")
	}
	in := decl.Rental
	if in == nil {
		in = &domain.RentalDeclaration{}
	}

	b := &breakdown{category: domain.CategoryRental}
	b.gross = domain.Clamp(in.GrossIncome)
	b.expenses = domain.Clamp(in.DeductibleExpenses)
	b.taxable = domain.Clamp(b.gross.Sub(capExpenses(b.gross, b.expenses, rules.DeductionCaps)))

	if err := applyProgressive(b, rules.BracketsFor(sc.Dependents), rules, yc, sc.Dependents); err != nil {
		return domain.CategoryResult{}, err
	}
	return b.emit(sc), nil
}

// AgriculturalCalculator taxes farming income. Professional farmers use the reduced schedule.
type AgriculturalCalculator struct{}

func (c *AgriculturalCalculator) Category() domain.CategoryID { return domain.CategoryAgricultural }

func (c *AgriculturalCalculator) Compute(decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error) {
	rules, ok := yc.Rules(domain.CategoryAgricultural)
	if !ok {
		return domain.CategoryResult{}, domain.CategoryUnsupportedf(yc.Year, domain.CategoryAgricultural, "no rules for this year")
	}
	in := decl.Agricultural
	if in == nil {
		in = &domain.AgriculturalDeclaration{}
	}

	brackets := rules.BracketsFor(sc.Dependents)
	if in.ProfessionalFarmer {
		if len(rules.ReducedBrackets) == 0 {
			return domain.CategoryResult{}, domain.ConfigInvalidf(yc.Year, domain.CategoryAgricultural, "professional farmer requested but no reduced brackets are defined")
		}
		brackets = rules.ReducedBrackets
	}

	b := &breakdown{category: domain.CategoryAgricultural}
	b.gross = domain.Clamp(in.GrossIncome)
	b.expenses = domain.Clamp(in.DeductibleExpenses)
	b.taxable = domain.Clamp(b.gross.Sub(capExpenses(b.gross, b.expenses, rules.DeductionCaps)))

	if err := applyProgressive(b, brackets, rules, yc, sc.Dependents); err != nil {
		return domain.CategoryResult{}, err
	}
	return b.emit(sc), nil
}
