package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// YearStatus describes how settled a year's ruleset is
type YearStatus string

const (
	StatusActive      YearStatus = "active"
	StatusProvisional YearStatus = "provisional"
	StatusArchived    YearStatus = "archived"
)

// DefaultLadder is the credit ladder reference that resolves to YearConfiguration.CreditLadder
const DefaultLadder = "default"

// ToggleFreelanceContributionsDeductible makes freelance social contributions reduce taxable income
const ToggleFreelanceContributionsDeductible = "freelance_contributions_deductible"

// YearConfiguration is the complete ruleset for one filing year.
// It is loaded once per year, shared by every request, and never mutated.
type YearConfiguration struct {
	Year          int                           `yaml:"year" json:"year"`
	Status        YearStatus                    `yaml:"status" json:"status"`
	Metadata      YearMetadata                  `yaml:"metadata" json:"metadata"`
	Toggles       map[string]bool               `yaml:"toggles" json:"toggles"`
	CreditLadder  *CreditLadderConfig           `yaml:"credit_ladder" json:"credit_ladder"`
	CreditLadders map[string]CreditLadderConfig `yaml:"credit_ladders" json:"credit_ladders"`
	Categories    map[CategoryID]CategoryRules  `yaml:"categories" json:"categories"`
	Obligations   ObligationRules               `yaml:"obligations" json:"obligations"`
}

// YearMetadata contains information about the ruleset itself
type YearMetadata struct {
	Description string `yaml:"description" json:"description"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Source      string `yaml:"source" json:"source"`
}

// Toggle reports whether a named toggle is switched on; absent toggles are off
func (yc *YearConfiguration) Toggle(name string) bool {
	return yc.Toggles[name]
}

// Rules returns the rules for a category and whether the year defines it
func (yc *YearConfiguration) Rules(id CategoryID) (CategoryRules, bool) {
	r, ok := yc.Categories[id]
	return r, ok
}

// Ladder resolves a credit ladder reference. An empty reference means no credit.
func (yc *YearConfiguration) Ladder(ref string) (*CreditLadderConfig, bool) {
	switch ref {
	case "":
		return nil, false
	case DefaultLadder:
		return yc.CreditLadder, yc.CreditLadder != nil
	}
	l, ok := yc.CreditLadders[ref]
	if !ok {
		return nil, false
	}
	return &l, true
}

// CategoryIDs returns the configured categories in calculation order
func (yc *YearConfiguration) CategoryIDs() []CategoryID {
	ids := make([]CategoryID, 0, len(yc.Categories))
	for id := range yc.Categories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Order() < ids[j].Order() })
	return ids
}

// Bracket is one marginal slice of a progressive table. A nil Upper marks the open-ended top slice.
type Bracket struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper" json:"upper"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsOpen reports whether the bracket has no upper bound
func (b Bracket) IsOpen() bool {
	return b.Upper == nil
}

// CreditLadderConfig is the dependents-indexed statutory credit with its income phase-out
type CreditLadderConfig struct {
	AmountsByDependents        []decimal.Decimal `yaml:"amounts_by_dependents" json:"amounts_by_dependents"`
	IncomeFloor                decimal.Decimal   `yaml:"income_floor" json:"income_floor"`
	ReductionStep              decimal.Decimal   `yaml:"reduction_step" json:"reduction_step"`
	PhaseOutDependentThreshold int               `yaml:"phase_out_dependent_threshold" json:"phase_out_dependent_threshold"`
	MaxDependents              int               `yaml:"max_dependents" json:"max_dependents"`
	EligibleCategories         []CategoryID      `yaml:"eligible_categories" json:"eligible_categories"`
}

// PhaseOutApplies reports whether the income phase-out applies to a category
func (c *CreditLadderConfig) PhaseOutApplies(id CategoryID) bool {
	for _, e := range c.EligibleCategories {
		if e == id {
			return true
		}
	}
	return false
}

// CategoryRules holds every rule section a category calculator may consult.
// Which sections are required depends on the category.
type CategoryRules struct {
	Brackets             []Bracket                  `yaml:"brackets" json:"brackets,omitempty"`
	BracketsByDependents [][]Bracket                `yaml:"brackets_by_dependents" json:"brackets_by_dependents,omitempty"`
	ReducedBrackets      []Bracket                  `yaml:"reduced_brackets" json:"reduced_brackets,omitempty"`
	CreditLadder         string                     `yaml:"credit_ladder" json:"credit_ladder,omitempty"`
	Contributions        *ContributionRules         `yaml:"contributions" json:"contributions,omitempty"`
	ContributionClasses  *ContributionClasses       `yaml:"contribution_classes" json:"contribution_classes,omitempty"`
	TradeFee             *TradeFeeRules             `yaml:"trade_fee" json:"trade_fee,omitempty"`
	DeductionCaps        *DeductionCaps             `yaml:"deduction_caps" json:"deduction_caps,omitempty"`
	Rates                map[string]decimal.Decimal `yaml:"rates" json:"rates,omitempty"`
	Mode                 string                     `yaml:"mode" json:"mode,omitempty"`
	FlatRate             decimal.Decimal            `yaml:"flat_rate" json:"flat_rate"`
}

// BracketsFor picks the bracket table for a dependents count.
// Dependents-indexed tables take precedence; counts past the last table use the last one.
func (r CategoryRules) BracketsFor(dependents int) []Bracket {
	if n := len(r.BracketsByDependents); n > 0 {
		if dependents < 0 {
			dependents = 0
		}
		if dependents >= n {
			dependents = n - 1
		}
		return r.BracketsByDependents[dependents]
	}
	return r.Brackets
}

// ContributionRules are the employee social-contribution parameters for salaried income
type ContributionRules struct {
	EmployeeRate    decimal.Decimal `yaml:"employee_rate" json:"employee_rate"`
	MonthlyCap      decimal.Decimal `yaml:"monthly_cap" json:"monthly_cap"`
	PaymentsPerYear int             `yaml:"payments_per_year" json:"payments_per_year"`
}

// ContributionClasses map an insurance class to its monthly contribution amount
type ContributionClasses struct {
	Mandatory map[string]decimal.Decimal `yaml:"mandatory" json:"mandatory"`
	Auxiliary map[string]decimal.Decimal `yaml:"auxiliary" json:"auxiliary"`
	LumpSum   map[string]decimal.Decimal `yaml:"lump_sum" json:"lump_sum"`
}

// TradeFeeRules describe the flat business-activity levy
type TradeFeeRules struct {
	BaseAmount             decimal.Decimal            `yaml:"base_amount" json:"base_amount"`
	LocationModifiers      map[string]decimal.Decimal `yaml:"location_modifiers" json:"location_modifiers"`
	Sunset                 bool                       `yaml:"sunset" json:"sunset"`
	NewlySelfEmployedYears int                        `yaml:"newly_self_employed_years" json:"newly_self_employed_years"`
}

// DeductionCaps limit and supplement declared expenses
type DeductionCaps struct {
	StandardRate decimal.Decimal  `yaml:"standard_rate" json:"standard_rate"`
	ExpenseCap   *decimal.Decimal `yaml:"expense_cap" json:"expense_cap"`
}

// ObligationRules list the flat obligation kinds a year accepts
type ObligationRules struct {
	Kinds []string `yaml:"kinds" json:"kinds"`
}

// Allows reports whether kind is an accepted obligation
func (o ObligationRules) Allows(kind string) bool {
	for _, k := range o.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
