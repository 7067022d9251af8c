package calculation

import (
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SalaryCalculator handles employment and pension income, which share the same arithmetic
// and differ only in the rules section (brackets, contributions, credit ladder) they read.
type SalaryCalculator struct {
	category domain.CategoryID
}

// NewSalaryCalculator creates a salary calculator for employment or pension
func NewSalaryCalculator(category domain.CategoryID) *SalaryCalculator {
	return &SalaryCalculator{category: category}
}

func (c *SalaryCalculator) Category() domain.CategoryID { return c.category }

func (c *SalaryCalculator) declaration(decl *domain.IncomeDeclaration) *domain.SalaryDeclaration {
	if c.category == domain.CategoryPension {
		return decl.Pension
	}
	return decl.Employment
}

// Compute taxes salaried income after employee contributions and applies the category's credit
func (c *SalaryCalculator) Compute(decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error) {
	rules, ok := yc.Rules(c.category)
	if !ok {
		return domain.CategoryResult{}, domain.CategoryUnsupportedf(yc.Year, c.category, "no rules for this year")
	}
	in := c.declaration(decl)
	if in == nil {
		in = &domain.SalaryDeclaration{}
	}

	b := &breakdown{category: c.category}
	b.gross = AnnualGross(in, rules.Contributions)
	b.contributions = EmployeeContributions(b.gross, in, rules.Contributions)
	b.taxable = domain.Clamp(b.gross.Sub(b.contributions))

	if err := applyProgressive(b, rules.BracketsFor(sc.Dependents), rules, yc, sc.Dependents); err != nil {
		return domain.CategoryResult{}, err
	}
	return b.emit(sc), nil
}

// AnnualGross normalizes a monthly salary to an annual figure.
// The declaration's payment count wins over the year's default.
func AnnualGross(in *domain.SalaryDeclaration, contrib *domain.ContributionRules) decimal.Decimal {
	if in.MonthlyIncome == nil {
		return domain.Clamp(in.GrossIncome)
	}
	payments := in.PaymentsPerYear
	if payments <= 0 && contrib != nil {
		payments = contrib.PaymentsPerYear
	}
	if payments <= 0 {
		payments = domain.MonthsPerYear
	}
	return domain.Clamp(in.MonthlyIncome.Mul(decimal.NewFromInt(int64(payments))))
}

// EmployeeContributions returns the employee share of social insurance on gross income.
// Insurable earnings are capped at the monthly ceiling times the yearly payment count.
func EmployeeContributions(gross decimal.Decimal, in *domain.SalaryDeclaration, contrib *domain.ContributionRules) decimal.Decimal {
	if contrib == nil {
		return decimal.Zero
	}
	if in.IncludeContributions != nil && !*in.IncludeContributions {
		return decimal.Zero
	}
	insurable := gross
	if contrib.MonthlyCap.IsPositive() && contrib.PaymentsPerYear > 0 {
		ceiling := contrib.MonthlyCap.Mul(decimal.NewFromInt(int64(contrib.PaymentsPerYear)))
		insurable = decimal.Min(insurable, ceiling)
	}
	return insurable.Mul(contrib.EmployeeRate)
}
