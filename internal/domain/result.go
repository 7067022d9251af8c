package domain

import "github.com/shopspring/decimal"

// BracketAmount is the tax raised by one bracket of a progressive table
type BracketAmount struct {
	Lower  decimal.Decimal  `json:"lower"`
	Upper  *decimal.Decimal `json:"upper"`
	Rate   decimal.Decimal  `json:"rate"`
	Amount decimal.Decimal  `json:"amount"`
	Tax    decimal.Decimal  `json:"tax"`
}

// LineItem is one named entry of an itemized category
type LineItem struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
	Tax    decimal.Decimal `json:"tax"`
}

// CategoryResult is the emitted breakdown of one category. Values are rounded for emission.
type CategoryResult struct {
	Category         CategoryID      `json:"category"`
	Label            string          `json:"label"`
	GrossIncome      decimal.Decimal `json:"gross_income"`
	TaxableIncome    decimal.Decimal `json:"taxable_income"`
	TaxBeforeCredits decimal.Decimal `json:"tax_before_credits"`
	Credits          decimal.Decimal `json:"credits"`
	Tax              decimal.Decimal `json:"tax"`
	TradeFee         decimal.Decimal `json:"trade_fee"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	NetIncome        decimal.Decimal `json:"net_income"`
	Contributions    decimal.Decimal `json:"contributions"`
	Brackets         []BracketAmount `json:"brackets,omitempty"`
	Items            []LineItem      `json:"items,omitempty"`
}

// Summary aggregates every category of a calculation
type Summary struct {
	IncomeTotal      decimal.Decimal `json:"income_total"`
	TaxTotal         decimal.Decimal `json:"tax_total"`
	NetIncome        decimal.Decimal `json:"net_income"`
	NetMonthlyIncome decimal.Decimal `json:"net_monthly_income"`
	EffectiveTaxRate decimal.Decimal `json:"effective_tax_rate"`
}

// CalculationResult is the full response for one declaration
type CalculationResult struct {
	Year       int               `json:"year"`
	Locale     string            `json:"locale"`
	Categories []CategoryResult  `json:"categories"`
	Summary    Summary           `json:"summary"`
	Labels     map[string]string `json:"labels"`
}

// Category returns the result for id, if it was calculated
func (r *CalculationResult) Category(id CategoryID) (CategoryResult, bool) {
	for _, c := range r.Categories {
		if c.Category == id {
			return c, true
		}
	}
	return CategoryResult{}, false
}
