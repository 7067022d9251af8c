package domain

import "github.com/shopspring/decimal"

// IncomeDeclaration is one taxpayer's validated, category-structured income for a filing year.
// A nil section means the category was not declared.
type IncomeDeclaration struct {
	Year         int                      `yaml:"year" json:"year"`
	Dependents   int                      `yaml:"dependents" json:"dependents"`
	Locale       string                   `yaml:"locale" json:"locale,omitempty"`
	Employment   *SalaryDeclaration       `yaml:"employment" json:"employment,omitempty"`
	Pension      *SalaryDeclaration       `yaml:"pension" json:"pension,omitempty"`
	Freelance    *FreelanceDeclaration    `yaml:"freelance" json:"freelance,omitempty"`
	Rental       *RentalDeclaration       `yaml:"rental" json:"rental,omitempty"`
	Agricultural *AgriculturalDeclaration `yaml:"agricultural" json:"agricultural,omitempty"`
	Investment   *ItemizedDeclaration     `yaml:"investment" json:"investment,omitempty"`
	Other        *OtherDeclaration        `yaml:"other" json:"other,omitempty"`
	Obligations  *ItemizedDeclaration     `yaml:"obligations" json:"obligations,omitempty"`
}

// Declared lists the categories present in the declaration, in calculation order
func (d *IncomeDeclaration) Declared() []CategoryID {
	var ids []CategoryID
	for _, id := range AllCategories {
		if d.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Has reports whether the category section is present
func (d *IncomeDeclaration) Has(id CategoryID) bool {
	switch id {
	case CategoryEmployment:
		return d.Employment != nil
	case CategoryPension:
		return d.Pension != nil
	case CategoryFreelance:
		return d.Freelance != nil
	case CategoryRental:
		return d.Rental != nil
	case CategoryAgricultural:
		return d.Agricultural != nil
	case CategoryInvestment:
		return d.Investment != nil
	case CategoryOther:
		return d.Other != nil
	case CategoryObligations:
		return d.Obligations != nil
	}
	return false
}

// SalaryDeclaration covers employment and pension income.
// Either GrossIncome or MonthlyIncome is set, never both.
type SalaryDeclaration struct {
	GrossIncome          decimal.Decimal  `yaml:"gross_income" json:"gross_income"`
	MonthlyIncome        *decimal.Decimal `yaml:"monthly_income" json:"monthly_income,omitempty"`
	PaymentsPerYear      int              `yaml:"payments_per_year" json:"payments_per_year,omitempty"`
	IncludeContributions *bool            `yaml:"include_contributions" json:"include_contributions,omitempty"`
}

// FreelanceDeclaration covers business and professional income.
// Profit is a shortcut that replaces GrossRevenue and DeductibleExpenses.
type FreelanceDeclaration struct {
	GrossRevenue       decimal.Decimal  `yaml:"gross_revenue" json:"gross_revenue"`
	DeductibleExpenses decimal.Decimal  `yaml:"deductible_expenses" json:"deductible_expenses"`
	Profit             *decimal.Decimal `yaml:"profit" json:"profit,omitempty"`
	MandatoryClass     string           `yaml:"mandatory_class" json:"mandatory_class,omitempty"`
	AuxiliaryClass     string           `yaml:"auxiliary_class" json:"auxiliary_class,omitempty"`
	LumpSumClass       string           `yaml:"lump_sum_class" json:"lump_sum_class,omitempty"`
	ContributionMonths int              `yaml:"contribution_months" json:"contribution_months,omitempty"`
	OtherContributions decimal.Decimal  `yaml:"other_contributions" json:"other_contributions"`
	TradeFee           TradeFeeChoice   `yaml:"trade_fee" json:"trade_fee"`
}

// TradeFeeChoice selects whether and where the trade fee is charged
type TradeFeeChoice struct {
	Include     bool   `yaml:"include" json:"include"`
	Location    string `yaml:"location" json:"location,omitempty"`
	YearsActive int    `yaml:"years_active" json:"years_active"`
}

// RentalDeclaration covers property rental income
type RentalDeclaration struct {
	GrossIncome        decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	DeductibleExpenses decimal.Decimal `yaml:"deductible_expenses" json:"deductible_expenses"`
}

// AgriculturalDeclaration covers farming income
type AgriculturalDeclaration struct {
	GrossIncome        decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	DeductibleExpenses decimal.Decimal `yaml:"deductible_expenses" json:"deductible_expenses"`
	ProfessionalFarmer bool            `yaml:"professional_farmer" json:"professional_farmer"`
}

// ItemizedDeclaration is a set of named amounts (investment sub-categories, obligation kinds)
type ItemizedDeclaration struct {
	Items map[string]decimal.Decimal `yaml:"items" json:"items"`
}

// OtherDeclaration covers income that fits no other category
type OtherDeclaration struct {
	GrossIncome decimal.Decimal `yaml:"gross_income" json:"gross_income"`
}
