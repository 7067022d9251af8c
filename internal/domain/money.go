package domain

import "github.com/shopspring/decimal"

const (
	// MoneyPlaces is the precision every emitted currency figure is rounded to
	MoneyPlaces = 2
	// RatePlaces is the precision emitted ratios are rounded to
	RatePlaces = 4
	// MonthsPerYear converts annual net income to a monthly figure
	MonthsPerYear = 12
)

var thousand = decimal.NewFromInt(1000)

// Clamp treats negative amounts as zero
func Clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// RoundMoney rounds a currency amount for emission
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// RoundRate rounds a ratio for emission
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatePlaces)
}

// WholeThousands returns how many complete thousands d contains (never negative)
func WholeThousands(d decimal.Decimal) decimal.Decimal {
	return Clamp(d).Div(thousand).Floor()
}

// SumMoney adds amounts
func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Ptr returns a pointer to d, convenient for optional fields
func Ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
