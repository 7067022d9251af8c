package calculation

import (
	"math/rand"
	"testing"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBrackets(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		tax      string
		brackets int
	}{
		{"zero income", "0", "0", 0},
		{"negative income", "-500", "0", 0},
		{"inside first bracket", "5000", "500", 1},
		{"exactly on a threshold", "10000", "1000", 1},
		{"second bracket", "15000", "2000", 2},
		{"open top bracket", "50000", "12000", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, amounts := EvaluateBrackets(d(tt.income), simpleBrackets())
			assert.True(t, d(tt.tax).Equal(tax), "expected %s, got %s", tt.tax, tax)
			assert.Len(t, amounts, tt.brackets)
		})
	}
}

func TestEvaluateBrackets_BreakdownSumsToTax(t *testing.T) {
	tax, amounts := EvaluateBrackets(d("23456.78"), simpleBrackets())
	require.Len(t, amounts, 3)

	sumTax := decimal.Zero
	sumIncome := decimal.Zero
	for _, a := range amounts {
		sumTax = sumTax.Add(a.Tax)
		sumIncome = sumIncome.Add(a.Amount)
	}
	assert.True(t, tax.Equal(sumTax))
	assert.True(t, d("23456.78").Equal(sumIncome))
	assert.Nil(t, amounts[2].Upper, "top slice is open-ended")
}

func TestEvaluateBrackets_TableWithoutOpenTop(t *testing.T) {
	capped := simpleBrackets()[:2]
	tax, amounts := EvaluateBrackets(d("50000"), capped)
	assert.True(t, d("3000").Equal(tax), "income above a closed table is untaxed by it")
	assert.Len(t, amounts, 2)
}

// randomTable builds a valid table: strictly increasing thresholds, non-decreasing rates
func randomTable(r *rand.Rand) []domain.Bracket {
	n := 1 + r.Intn(7)
	brackets := make([]domain.Bracket, 0, n)
	lower := decimal.Zero
	rate := decimal.Zero
	for i := 0; i < n; i++ {
		rate = decimal.Min(rate.Add(decimal.NewFromInt(int64(r.Intn(15))).Div(decimal.NewFromInt(100))), decimal.NewFromInt(1))
		b := domain.Bracket{Lower: lower, Rate: rate}
		if i < n-1 {
			upper := lower.Add(decimal.NewFromInt(int64(1 + r.Intn(20000))))
			b.Upper = &upper
			lower = upper
		}
		brackets = append(brackets, b)
	}
	return brackets
}

func TestEvaluateBrackets_Monotonic(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for table := 0; table < 200; table++ {
		brackets := randomTable(r)
		prev := decimal.Zero
		income := decimal.NewFromInt(-1000)
		for step := 0; step < 100; step++ {
			income = income.Add(decimal.NewFromFloat(r.Float64() * 2500).Round(2))
			tax, _ := EvaluateBrackets(income, brackets)
			require.False(t, tax.LessThan(prev),
				"table %d: tax fell from %s to %s at income %s", table, prev, tax, income)
			prev = tax
		}
	}
}

func TestEvaluateBrackets_2026Tables(t *testing.T) {
	rules, ok := builtInYear(t, 2026).Rules(domain.CategoryEmployment)
	require.True(t, ok)

	tax, _ := EvaluateBrackets(d("12000"), rules.BracketsFor(0))
	assert.True(t, d("1300").Equal(tax), "got %s", tax)

	tax, _ = EvaluateBrackets(d("30000"), rules.BracketsFor(4))
	assert.True(t, d("1800").Equal(tax), "got %s", tax)

	// six or more dependents share the last table
	tax6, _ := EvaluateBrackets(d("30000"), rules.BracketsFor(6))
	assert.True(t, tax.Equal(tax6))
}
