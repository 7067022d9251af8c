package config

import (
	"fmt"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// OtherModes are the accepted values of the "other" category's mode
var OtherModes = map[string]bool{"flat": true, "brackets": true}

// ValidateYearConfiguration checks the structural invariants of a decoded ruleset.
// Every failure is a domain.ErrConfigInvalid naming the offending category where there is one.
func ValidateYearConfiguration(yc *domain.YearConfiguration, year int) error {
	if yc.Year != year {
		return domain.ConfigInvalidf(year, "", "document declares year %d", yc.Year)
	}
	switch yc.Status {
	case domain.StatusActive, domain.StatusProvisional, domain.StatusArchived:
	default:
		return domain.ConfigInvalidf(year, "", "unknown status %q", yc.Status)
	}
	if len(yc.Categories) == 0 {
		return domain.ConfigInvalidf(year, "", "no categories defined")
	}

	if yc.CreditLadder != nil {
		if err := validateLadder(yc.CreditLadder); err != nil {
			return domain.ConfigInvalidf(year, "", "credit_ladder: %v", err)
		}
	}
	for name, ladder := range yc.CreditLadders {
		if name == "" || name == domain.DefaultLadder {
			return domain.ConfigInvalidf(year, "", "credit_ladders: reserved name %q", name)
		}
		if err := validateLadder(&ladder); err != nil {
			return domain.ConfigInvalidf(year, "", "credit_ladders.%s: %v", name, err)
		}
	}

	for _, id := range yc.CategoryIDs() {
		if !id.Valid() || id == domain.CategoryObligations {
			return domain.ConfigInvalidf(year, id, "not a configurable category")
		}
		if err := validateCategory(id, yc.Categories[id], yc); err != nil {
			return domain.ConfigInvalidf(year, id, "%v", err)
		}
	}

	seen := make(map[string]bool, len(yc.Obligations.Kinds))
	for _, kind := range yc.Obligations.Kinds {
		if kind == "" || seen[kind] {
			return domain.ConfigInvalidf(year, domain.CategoryObligations, "empty or duplicate kind %q", kind)
		}
		seen[kind] = true
	}
	return nil
}

func validateCategory(id domain.CategoryID, rules domain.CategoryRules, yc *domain.YearConfiguration) error {
	switch id {
	case domain.CategoryEmployment, domain.CategoryPension, domain.CategoryFreelance,
		domain.CategoryRental, domain.CategoryAgricultural:
		if len(rules.Brackets) == 0 && len(rules.BracketsByDependents) == 0 {
			return fmt.Errorf("brackets are required")
		}
	case domain.CategoryInvestment:
		if len(rules.Rates) == 0 {
			return fmt.Errorf("rates are required")
		}
	case domain.CategoryOther:
		if !OtherModes[rules.Mode] {
			return fmt.Errorf("unknown mode %q", rules.Mode)
		}
		if rules.Mode == "brackets" && len(rules.Brackets) == 0 && len(rules.BracketsByDependents) == 0 {
			return fmt.Errorf("brackets are required in brackets mode")
		}
		if err := checkRate("flat_rate", rules.FlatRate); err != nil {
			return err
		}
	}

	if err := ValidateBrackets(rules.Brackets); err != nil {
		return fmt.Errorf("brackets: %w", err)
	}
	for i, table := range rules.BracketsByDependents {
		if err := ValidateBrackets(table); err != nil {
			return fmt.Errorf("brackets_by_dependents[%d]: %w", i, err)
		}
	}
	if err := ValidateBrackets(rules.ReducedBrackets); err != nil {
		return fmt.Errorf("reduced_brackets: %w", err)
	}

	if rules.CreditLadder != "" {
		if _, ok := yc.Ladder(rules.CreditLadder); !ok {
			return fmt.Errorf("credit ladder %q is not defined", rules.CreditLadder)
		}
	}

	if c := rules.Contributions; c != nil {
		if err := checkRate("contributions.employee_rate", c.EmployeeRate); err != nil {
			return err
		}
		if c.MonthlyCap.IsNegative() || c.PaymentsPerYear < 0 {
			return fmt.Errorf("contributions: negative cap or payment count")
		}
	}
	if cc := rules.ContributionClasses; cc != nil {
		for kind, table := range map[string]map[string]decimal.Decimal{
			"mandatory": cc.Mandatory,
			"auxiliary": cc.Auxiliary,
			"lump_sum":  cc.LumpSum,
		} {
			for class, amount := range table {
				if amount.IsNegative() {
					return fmt.Errorf("contribution_classes.%s.%s is negative", kind, class)
				}
			}
		}
	}
	if tf := rules.TradeFee; tf != nil {
		if tf.BaseAmount.IsNegative() || tf.NewlySelfEmployedYears < 0 {
			return fmt.Errorf("trade_fee: negative base amount or exemption window")
		}
		for location, modifier := range tf.LocationModifiers {
			if modifier.IsNegative() {
				return fmt.Errorf("trade_fee.location_modifiers.%s is negative", location)
			}
		}
	}
	if dc := rules.DeductionCaps; dc != nil {
		if err := checkRate("deduction_caps.standard_rate", dc.StandardRate); err != nil {
			return err
		}
		if dc.ExpenseCap != nil && dc.ExpenseCap.IsNegative() {
			return fmt.Errorf("deduction_caps.expense_cap is negative")
		}
	}
	for name, rate := range rules.Rates {
		if err := checkRate("rates."+name, rate); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBrackets checks ordering, rate range and the open-ended top bracket.
// An empty table is valid here; whether a table is required depends on the category.
func ValidateBrackets(brackets []domain.Bracket) error {
	for i, b := range brackets {
		if b.Lower.IsNegative() {
			return fmt.Errorf("bracket %d: negative lower bound", i)
		}
		if err := checkRate(fmt.Sprintf("bracket %d rate", i), b.Rate); err != nil {
			return err
		}
		if b.IsOpen() {
			if i != len(brackets)-1 {
				return fmt.Errorf("bracket %d: only the last bracket may be open-ended", i)
			}
		} else if !b.Lower.LessThan(*b.Upper) {
			return fmt.Errorf("bracket %d: lower %s is not below upper %s", i, b.Lower, b.Upper)
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if !prev.Lower.LessThan(b.Lower) {
			return fmt.Errorf("bracket %d: thresholds must be strictly increasing", i)
		}
		if b.Lower.LessThan(*prev.Upper) {
			return fmt.Errorf("bracket %d: overlaps bracket %d", i, i-1)
		}
		if b.Rate.LessThan(prev.Rate) {
			return fmt.Errorf("bracket %d: rate decreases", i)
		}
	}
	return nil
}

func validateLadder(l *domain.CreditLadderConfig) error {
	if len(l.AmountsByDependents) == 0 {
		return fmt.Errorf("amounts_by_dependents is empty")
	}
	if l.MaxDependents < 0 || len(l.AmountsByDependents) <= l.MaxDependents {
		return fmt.Errorf("amounts_by_dependents has %d entries, need one per dependents count 0..%d",
			len(l.AmountsByDependents), l.MaxDependents)
	}
	for i, a := range l.AmountsByDependents {
		if a.IsNegative() {
			return fmt.Errorf("amounts_by_dependents[%d] is negative", i)
		}
	}
	if l.IncomeFloor.IsNegative() || l.ReductionStep.IsNegative() {
		return fmt.Errorf("income_floor and reduction_step must not be negative")
	}
	if l.PhaseOutDependentThreshold < 0 {
		return fmt.Errorf("phase_out_dependent_threshold must not be negative")
	}
	for _, id := range l.EligibleCategories {
		if !id.Valid() || !id.IsIncome() {
			return fmt.Errorf("eligible_categories: unknown category %q", id)
		}
	}
	return nil
}

func checkRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(one) {
		return fmt.Errorf("%s %s is outside [0, 1]", name, rate)
	}
	return nil
}
