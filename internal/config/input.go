package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// SupportedLocales are the locales the label catalogue provides
var SupportedLocales = map[string]bool{"el": true, "en": true}

// deprecatedFields are legacy declaration shortcuts that are no longer accepted
var deprecatedFields = map[string]string{
	"net_income":         "declare gross income instead",
	"monthly_net_income": "declare monthly_income (gross) instead",
	"net_monthly_income": "declare monthly_income (gross) instead",
}

// InputParser turns declaration documents into validated income declarations.
// It is the request-validation layer in front of the calculation engine: it rejects legacy
// shapes and contradictory fields, and clamps negative amounts to zero.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a declaration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.IncomeDeclaration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a declaration document
func (ip *InputParser) Parse(data []byte) (*domain.IncomeDeclaration, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rejectDeprecated(raw, ""); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var decl domain.IncomeDeclaration
	if err := dec.Decode(&decl); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateDeclaration(&decl); err != nil {
		return nil, fmt.Errorf("declaration validation failed: %w", err)
	}
	return &decl, nil
}

// ValidateDeclaration checks a declaration and normalizes it in place
func (ip *InputParser) ValidateDeclaration(decl *domain.IncomeDeclaration) error {
	if decl.Year <= 0 {
		return fmt.Errorf("year is required")
	}
	if decl.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}
	if decl.Locale != "" && !SupportedLocales[decl.Locale] {
		return fmt.Errorf("unsupported locale %q", decl.Locale)
	}
	if len(decl.Declared()) == 0 {
		return fmt.Errorf("no income category declared")
	}

	if err := validateSalary("employment", decl.Employment); err != nil {
		return err
	}
	if err := validateSalary("pension", decl.Pension); err != nil {
		return err
	}
	if err := validateFreelance(decl.Freelance); err != nil {
		return err
	}
	if r := decl.Rental; r != nil {
		r.GrossIncome = domain.Clamp(r.GrossIncome)
		r.DeductibleExpenses = domain.Clamp(r.DeductibleExpenses)
	}
	if a := decl.Agricultural; a != nil {
		a.GrossIncome = domain.Clamp(a.GrossIncome)
		a.DeductibleExpenses = domain.Clamp(a.DeductibleExpenses)
	}
	if o := decl.Other; o != nil {
		o.GrossIncome = domain.Clamp(o.GrossIncome)
	}
	clampItems(decl.Investment)
	clampItems(decl.Obligations)
	return nil
}

func validateSalary(name string, s *domain.SalaryDeclaration) error {
	if s == nil {
		return nil
	}
	if s.MonthlyIncome != nil {
		if !s.GrossIncome.IsZero() {
			return fmt.Errorf("%s: gross_income and monthly_income are mutually exclusive", name)
		}
		s.MonthlyIncome = domain.Ptr(domain.Clamp(*s.MonthlyIncome))
	}
	if s.PaymentsPerYear < 0 {
		return fmt.Errorf("%s: payments_per_year cannot be negative", name)
	}
	s.GrossIncome = domain.Clamp(s.GrossIncome)
	return nil
}

func validateFreelance(f *domain.FreelanceDeclaration) error {
	if f == nil {
		return nil
	}
	if f.Profit != nil {
		if !f.GrossRevenue.IsZero() || !f.DeductibleExpenses.IsZero() {
			return fmt.Errorf("freelance: profit is mutually exclusive with gross_revenue and deductible_expenses")
		}
		f.Profit = domain.Ptr(domain.Clamp(*f.Profit))
	}
	if f.ContributionMonths < 0 || f.ContributionMonths > domain.MonthsPerYear {
		return fmt.Errorf("freelance: contribution_months must be between 0 and %d", domain.MonthsPerYear)
	}
	if f.TradeFee.YearsActive < 0 {
		return fmt.Errorf("freelance: trade_fee.years_active cannot be negative")
	}
	f.GrossRevenue = domain.Clamp(f.GrossRevenue)
	f.DeductibleExpenses = domain.Clamp(f.DeductibleExpenses)
	f.OtherContributions = domain.Clamp(f.OtherContributions)
	return nil
}

func clampItems(d *domain.ItemizedDeclaration) {
	if d == nil {
		return
	}
	for k, v := range d.Items {
		d.Items[k] = domain.Clamp(v)
	}
}

// rejectDeprecated walks the raw document looking for legacy keys
func rejectDeprecated(node map[string]interface{}, prefix string) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if hint, ok := deprecatedFields[k]; ok {
			return fmt.Errorf("field %s is no longer supported: %s", path, hint)
		}
		if child, ok := node[k].(map[string]interface{}); ok {
			if err := rejectDeprecated(child, path); err != nil {
				return err
			}
		}
	}
	return nil
}
