package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// absent marks a value one side of a diff does not define
const absent = "-"

// Change is one rule value that differs between two year configurations
type Change struct {
	Path string `json:"path"`
	From string `json:"from"`
	To   string `json:"to"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Path, c.From, c.To)
}

// DiffYears lists the rule values that changed from one year to another.
// Metadata is ignored; paths are dotted YAML keys with bracket indexes.
func DiffYears(from, to *domain.YearConfiguration) []Change {
	d := &differ{}
	d.value("status", string(from.Status), string(to.Status))
	d.toggles(from.Toggles, to.Toggles)
	d.ladder("credit_ladder", from.CreditLadder, to.CreditLadder)

	for _, name := range unionKeys(from.CreditLadders, to.CreditLadders) {
		var a, b *domain.CreditLadderConfig
		if l, ok := from.CreditLadders[name]; ok {
			a = &l
		}
		if l, ok := to.CreditLadders[name]; ok {
			b = &l
		}
		d.ladder("credit_ladders."+name, a, b)
	}

	for _, id := range domain.AllCategories {
		a, inFrom := from.Categories[id]
		b, inTo := to.Categories[id]
		path := "categories." + string(id)
		switch {
		case !inFrom && !inTo:
			continue
		case !inFrom:
			d.add(path, absent, "defined")
		case !inTo:
			d.add(path, "defined", absent)
		default:
			d.category(path, a, b)
		}
	}

	d.value("obligations.kinds", strings.Join(from.Obligations.Kinds, ","), strings.Join(to.Obligations.Kinds, ","))
	return d.changes
}

type differ struct {
	changes []Change
}

func (d *differ) add(path, from, to string) {
	d.changes = append(d.changes, Change{Path: path, From: from, To: to})
}

func (d *differ) value(path, from, to string) {
	if from != to {
		d.add(path, from, to)
	}
}

func (d *differ) decimal(path string, from, to decimal.Decimal) {
	if !from.Equal(to) {
		d.add(path, from.String(), to.String())
	}
}

func (d *differ) toggles(from, to map[string]bool) {
	for _, name := range unionKeys(from, to) {
		d.value("toggles."+name, strconv.FormatBool(from[name]), strconv.FormatBool(to[name]))
	}
}

func (d *differ) ladder(path string, from, to *domain.CreditLadderConfig) {
	switch {
	case from == nil && to == nil:
		return
	case from == nil:
		d.add(path, absent, "defined")
		return
	case to == nil:
		d.add(path, "defined", absent)
		return
	}
	d.value(path+".amounts_by_dependents", joinDecimals(from.AmountsByDependents), joinDecimals(to.AmountsByDependents))
	d.decimal(path+".income_floor", from.IncomeFloor, to.IncomeFloor)
	d.decimal(path+".reduction_step", from.ReductionStep, to.ReductionStep)
	d.value(path+".phase_out_dependent_threshold",
		strconv.Itoa(from.PhaseOutDependentThreshold), strconv.Itoa(to.PhaseOutDependentThreshold))
	d.value(path+".max_dependents", strconv.Itoa(from.MaxDependents), strconv.Itoa(to.MaxDependents))
	d.value(path+".eligible_categories", joinCategories(from.EligibleCategories), joinCategories(to.EligibleCategories))
}

func (d *differ) category(path string, from, to domain.CategoryRules) {
	d.brackets(path+".brackets", from.Brackets, to.Brackets)
	d.value(path+".brackets_by_dependents", strconv.Itoa(len(from.BracketsByDependents)), strconv.Itoa(len(to.BracketsByDependents)))
	for i := 0; i < len(from.BracketsByDependents) && i < len(to.BracketsByDependents); i++ {
		d.brackets(fmt.Sprintf("%s.brackets_by_dependents[%d]", path, i), from.BracketsByDependents[i], to.BracketsByDependents[i])
	}
	d.brackets(path+".reduced_brackets", from.ReducedBrackets, to.ReducedBrackets)
	d.value(path+".credit_ladder", from.CreditLadder, to.CreditLadder)
	d.value(path+".mode", from.Mode, to.Mode)
	d.decimal(path+".flat_rate", from.FlatRate, to.FlatRate)
	d.decimals(path+".rates", from.Rates, to.Rates)

	if from.Contributions != nil || to.Contributions != nil {
		a, b := orZero(from.Contributions), orZero(to.Contributions)
		d.decimal(path+".contributions.employee_rate", a.EmployeeRate, b.EmployeeRate)
		d.decimal(path+".contributions.monthly_cap", a.MonthlyCap, b.MonthlyCap)
		d.value(path+".contributions.payments_per_year", strconv.Itoa(a.PaymentsPerYear), strconv.Itoa(b.PaymentsPerYear))
	}
	if from.ContributionClasses != nil || to.ContributionClasses != nil {
		a, b := orZero(from.ContributionClasses), orZero(to.ContributionClasses)
		d.decimals(path+".contribution_classes.mandatory", a.Mandatory, b.Mandatory)
		d.decimals(path+".contribution_classes.auxiliary", a.Auxiliary, b.Auxiliary)
		d.decimals(path+".contribution_classes.lump_sum", a.LumpSum, b.LumpSum)
	}
	if from.TradeFee != nil || to.TradeFee != nil {
		a, b := orZero(from.TradeFee), orZero(to.TradeFee)
		d.decimal(path+".trade_fee.base_amount", a.BaseAmount, b.BaseAmount)
		d.decimals(path+".trade_fee.location_modifiers", a.LocationModifiers, b.LocationModifiers)
		d.value(path+".trade_fee.sunset", strconv.FormatBool(a.Sunset), strconv.FormatBool(b.Sunset))
		d.value(path+".trade_fee.newly_self_employed_years",
			strconv.Itoa(a.NewlySelfEmployedYears), strconv.Itoa(b.NewlySelfEmployedYears))
	}
	if from.DeductionCaps != nil || to.DeductionCaps != nil {
		a, b := orZero(from.DeductionCaps), orZero(to.DeductionCaps)
		d.decimal(path+".deduction_caps.standard_rate", a.StandardRate, b.StandardRate)
		d.value(path+".deduction_caps.expense_cap", optional(a.ExpenseCap), optional(b.ExpenseCap))
	}
}

func (d *differ) brackets(path string, from, to []domain.Bracket) {
	n := len(from)
	if len(to) > n {
		n = len(to)
	}
	for i := 0; i < n; i++ {
		p := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case i >= len(from):
			d.add(p, absent, describeBracket(to[i]))
		case i >= len(to):
			d.add(p, describeBracket(from[i]), absent)
		default:
			d.decimal(p+".lower", from[i].Lower, to[i].Lower)
			d.value(p+".upper", optional(from[i].Upper), optional(to[i].Upper))
			d.decimal(p+".rate", from[i].Rate, to[i].Rate)
		}
	}
}

func (d *differ) decimals(path string, from, to map[string]decimal.Decimal) {
	for _, key := range unionKeys(from, to) {
		a, inFrom := from[key]
		b, inTo := to[key]
		switch {
		case !inFrom:
			d.add(path+"."+key, absent, b.String())
		case !inTo:
			d.add(path+"."+key, a.String(), absent)
		default:
			d.decimal(path+"."+key, a, b)
		}
	}
}

func unionKeys[V any](a, b map[string]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orZero[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func optional(v *decimal.Decimal) string {
	if v == nil {
		return "open"
	}
	return v.String()
}

func describeBracket(b domain.Bracket) string {
	return fmt.Sprintf("%s-%s @ %s", b.Lower, optional(b.Upper), b.Rate)
}

func joinDecimals(values []decimal.Decimal) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

func joinCategories(ids []domain.CategoryID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}
