package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestmentCalculator(t *testing.T) {
	yc := builtInYear(t, 2026)
	decl := &domain.IncomeDeclaration{
		Year: 2026,
		Investment: &domain.ItemizedDeclaration{Items: map[string]decimal.Decimal{
			"interest":  d("1000"),
			"dividends": d("2000"),
		}},
	}
	result, err := (&InvestmentCalculator{}).Compute(decl, yc, shared(0))
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "dividends", result.Items[0].Key, "items are sorted by name")
	assert.Equal(t, "investment.dividends", result.Items[0].Label)
	assert.True(t, d("100").Equal(result.Items[0].Tax))
	assert.True(t, d("150").Equal(result.Items[1].Tax))

	assert.True(t, d("3000").Equal(result.GrossIncome))
	assert.True(t, d("250").Equal(result.Tax))
	assert.True(t, d("250").Equal(result.TotalTax))
	assert.True(t, d("2750").Equal(result.NetIncome))
	assert.Empty(t, result.Brackets)
}

func TestInvestmentCalculator_UnknownItem(t *testing.T) {
	yc := builtInYear(t, 2026)
	decl := &domain.IncomeDeclaration{
		Year:       2026,
		Investment: &domain.ItemizedDeclaration{Items: map[string]decimal.Decimal{"crypto": d("1")}},
	}
	_, err := (&InvestmentCalculator{}).Compute(decl, yc, shared(0))
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}

func TestObligationsCalculator(t *testing.T) {
	yc := builtInYear(t, 2026)
	decl := &domain.IncomeDeclaration{
		Year: 2026,
		Obligations: &domain.ItemizedDeclaration{Items: map[string]decimal.Decimal{
			"luxury": d("250.50"),
			"enfia":  d("400"),
		}},
	}
	result, err := (&ObligationsCalculator{}).Compute(decl, yc, shared(0))
	require.NoError(t, err)

	assert.True(t, result.GrossIncome.IsZero())
	assert.True(t, d("650.50").Equal(result.TotalTax))
	assert.True(t, d("-650.50").Equal(result.NetIncome))
	require.Len(t, result.Items, 2)
	assert.Equal(t, "enfia", result.Items[0].Key)
}

func TestObligationsCalculator_UnknownKind(t *testing.T) {
	yc := builtInYear(t, 2026)
	decl := &domain.IncomeDeclaration{
		Year:        2026,
		Obligations: &domain.ItemizedDeclaration{Items: map[string]decimal.Decimal{"yacht": d("10")}},
	}
	_, err := (&ObligationsCalculator{}).Compute(decl, yc, shared(0))
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}

func TestOtherCalculator(t *testing.T) {
	flat := builtInYear(t, 2025)
	decl := &domain.IncomeDeclaration{Year: 2025, Other: &domain.OtherDeclaration{GrossIncome: d("1000")}}
	result, err := (&OtherCalculator{}).Compute(decl, flat, shared(0))
	require.NoError(t, err)
	assert.True(t, d("220").Equal(result.Tax))
	assert.Empty(t, result.Brackets)

	progressive := builtInYear(t, 2026)
	decl = &domain.IncomeDeclaration{Year: 2026, Other: &domain.OtherDeclaration{GrossIncome: d("15000")}}
	result, err = (&OtherCalculator{}).Compute(decl, progressive, shared(0))
	require.NoError(t, err)
	assert.True(t, d("1900").Equal(result.Tax))
	assert.Len(t, result.Brackets, 2)
}

func TestOtherCalculator_UnknownMode(t *testing.T) {
	yc := &domain.YearConfiguration{
		Year:       2026,
		Categories: map[domain.CategoryID]domain.CategoryRules{domain.CategoryOther: {Mode: "lottery"}},
	}
	decl := &domain.IncomeDeclaration{Year: 2026, Other: &domain.OtherDeclaration{GrossIncome: d("1")}}
	_, err := (&OtherCalculator{}).Compute(decl, yc, shared(0))
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}
