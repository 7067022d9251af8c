package calculation

import (
	"github.com/rgehrsitz/taxcalc/internal/domain"
)

// Modes for income that fits no other category
const (
	OtherModeFlat     = "flat"
	OtherModeBrackets = "brackets"
)

// OtherCalculator taxes residual income at a flat rate or on a bracket table
type OtherCalculator struct{}

func (c *OtherCalculator) Category() domain.CategoryID { return domain.CategoryOther }

func (c *OtherCalculator) Compute(decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error) {
	rules, ok := yc.Rules(domain.CategoryOther)
	if !ok {
		return domain.CategoryResult{}, domain.CategoryUnsupportedf(yc.Year, domain.CategoryOther, "no rules for this year")
	}
	in := decl.Other
	if in == nil {
		in = &domain.OtherDeclaration{}
	}

	b := &breakdown{category: domain.CategoryOther}
	b.gross = domain.Clamp(in.GrossIncome)
	b.taxable = b.gross

	switch rules.Mode {
	case OtherModeFlat:
		b.taxBeforeCredits = b.taxable.Mul(rules.FlatRate)
		b.tax = b.taxBeforeCredits
	case OtherModeBrackets:
		if err := applyProgressive(b, rules.BracketsFor(sc.Dependents), rules, yc, sc.Dependents); err != nil {
			return domain.CategoryResult{}, err
		}
	default:
		return domain.CategoryResult{}, domain.ConfigInvalidf(yc.Year, domain.CategoryOther, "unknown mode %q", rules.Mode)
	}
	return b.emit(sc), nil
}
