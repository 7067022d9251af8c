package calculation

import (
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CreditLadder computes the dependents-indexed statutory credit.
// Every constant comes from the year's CreditLadderConfig.
type CreditLadder struct {
	Config *domain.CreditLadderConfig
}

// NewCreditLadder creates a credit ladder over a validated configuration
func NewCreditLadder(config *domain.CreditLadderConfig) *CreditLadder {
	return &CreditLadder{Config: config}
}

// BaseCredit returns the ladder amount for a dependents count, capped at the last rung
func (cl *CreditLadder) BaseCredit(dependents int) decimal.Decimal {
	amounts := cl.Config.AmountsByDependents
	if len(amounts) == 0 {
		return decimal.Zero
	}
	if dependents < 0 {
		dependents = 0
	}
	if dependents > len(amounts)-1 {
		dependents = len(amounts) - 1
	}
	return amounts[dependents]
}

// CreditFor returns the credit after the income phase-out.
// The phase-out only runs for eligible categories below the dependents threshold;
// otherwise the base credit is granted unconditionally.
func (cl *CreditLadder) CreditFor(dependents int, taxableIncome decimal.Decimal, categoryEligible bool) decimal.Decimal {
	base := cl.BaseCredit(dependents)
	if !categoryEligible || dependents >= cl.Config.PhaseOutDependentThreshold {
		return base
	}
	if !taxableIncome.GreaterThan(cl.Config.IncomeFloor) {
		return base
	}
	reduction := domain.WholeThousands(taxableIncome.Sub(cl.Config.IncomeFloor)).Mul(cl.Config.ReductionStep)
	return domain.Clamp(base.Sub(reduction))
}
