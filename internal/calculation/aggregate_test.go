package calculation

import (
	"math/rand"
	"testing"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	results := []domain.CategoryResult{
		{Category: domain.CategoryEmployment, GrossIncome: d("30000"), TotalTax: d("4000")},
		{Category: domain.CategoryRental, GrossIncome: d("6000"), TotalTax: d("900")},
		{Category: domain.CategoryObligations, GrossIncome: d("0"), TotalTax: d("500"), NetIncome: d("-500")},
	}
	s := Combine(results)

	assert.True(t, d("36000").Equal(s.IncomeTotal))
	assert.True(t, d("5400").Equal(s.TaxTotal))
	assert.True(t, d("30600").Equal(s.NetIncome))
	assert.True(t, d("2550").Equal(s.NetMonthlyIncome))
	assert.True(t, d("0.15").Equal(s.EffectiveTaxRate))
}

func TestCombine_NoIncome(t *testing.T) {
	s := Combine([]domain.CategoryResult{
		{Category: domain.CategoryObligations, TotalTax: d("300"), NetIncome: d("-300")},
	})
	assert.True(t, s.IncomeTotal.IsZero())
	assert.True(t, s.EffectiveTaxRate.IsZero())
	assert.True(t, d("-300").Equal(s.NetIncome))
	assert.True(t, d("-25").Equal(s.NetMonthlyIncome))

	empty := Combine(nil)
	assert.True(t, empty.TaxTotal.IsZero())
}

func TestCombine_RoundsRatiosOnce(t *testing.T) {
	s := Combine([]domain.CategoryResult{
		{Category: domain.CategoryEmployment, GrossIncome: d("30000"), TotalTax: d("10000")},
	})
	assert.True(t, d("1666.67").Equal(s.NetMonthlyIncome), "got %s", s.NetMonthlyIncome)
	assert.True(t, d("0.3333").Equal(s.EffectiveTaxRate), "got %s", s.EffectiveTaxRate)
}

func TestCombine_TaxTotalIsExactSum(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 500; round++ {
		n := 1 + r.Intn(len(domain.AllCategories))
		results := make([]domain.CategoryResult, 0, n)
		for i := 0; i < n; i++ {
			b := &breakdown{
				category: domain.AllCategories[i],
				gross:    decimal.NewFromFloat(r.Float64() * 100000),
				tax:      decimal.NewFromFloat(r.Float64() * 20000).Div(decimal.NewFromInt(3)),
				tradeFee: decimal.NewFromFloat(r.Float64() * 650).Div(decimal.NewFromInt(7)),
			}
			results = append(results, b.emit(shared(0)))
		}

		sum := decimal.Zero
		for _, res := range results {
			sum = sum.Add(res.TotalTax)
		}
		s := Combine(results)
		assert.True(t, sum.Equal(s.TaxTotal), "round %d: %s != %s", round, sum, s.TaxTotal)
		assert.True(t, s.IncomeTotal.Sub(s.TaxTotal).Equal(s.NetIncome))
	}
}
