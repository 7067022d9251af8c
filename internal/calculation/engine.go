package calculation

import (
	"context"
	"errors"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"go.uber.org/zap"
)

// ConfigLoader supplies the immutable ruleset for a filing year
type ConfigLoader interface {
	Load(ctx context.Context, year int) (*domain.YearConfiguration, error)
}

// DefaultLocale is used when neither the declaration nor the engine names one
const DefaultLocale = "el"

// ResultFields are the output fields that receive a display label in every result
var ResultFields = []string{
	"year",
	"gross_income",
	"taxable_income",
	"tax_before_credits",
	"credits",
	"tax",
	"trade_fee",
	"total_tax",
	"net_income",
	"contributions",
	"income_total",
	"tax_total",
	"net_monthly_income",
	"effective_tax_rate",
}

// CalculationEngine orchestrates a single calculation: load the year, run each declared
// category, aggregate. It holds no per-request state and is safe for concurrent use.
type CalculationEngine struct {
	loader        ConfigLoader
	calculators   map[domain.CategoryID]CategoryCalculator
	labels        domain.LabelFunc
	logger        *zap.Logger
	DefaultLocale string
}

// NewCalculationEngine creates an engine with the standard calculators
func NewCalculationEngine(loader ConfigLoader, labels domain.LabelFunc) *CalculationEngine {
	return NewCalculationEngineWithCalculators(loader, labels, DefaultCalculators()...)
}

// NewCalculationEngineWithCalculators creates an engine with an explicit calculator set
func NewCalculationEngineWithCalculators(loader ConfigLoader, labels domain.LabelFunc, calculators ...CategoryCalculator) *CalculationEngine {
	if labels == nil {
		labels = domain.KeyLabel
	}
	ce := &CalculationEngine{
		loader:        loader,
		calculators:   make(map[domain.CategoryID]CategoryCalculator, len(calculators)),
		labels:        labels,
		logger:        zap.NewNop(),
		DefaultLocale: DefaultLocale,
	}
	for _, c := range calculators {
		ce.calculators[c.Category()] = c
	}
	return ce
}

// SetLogger sets the operator logger; nil disables logging
func (ce *CalculationEngine) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ce.logger = logger
}

// Calculate produces the full result for one declaration. Any category failure fails the
// whole calculation; partial results are never returned.
func (ce *CalculationEngine) Calculate(ctx context.Context, decl *domain.IncomeDeclaration) (*domain.CalculationResult, error) {
	yc, err := ce.loader.Load(ctx, decl.Year)
	if err != nil {
		ce.logFailure(err, decl.Year)
		return nil, err
	}

	locale := decl.Locale
	if locale == "" {
		locale = ce.DefaultLocale
	}
	sc := &SharedContext{
		Dependents: decl.Dependents,
		Locale:     locale,
		Label:      ce.labels,
	}

	declared := decl.Declared()
	results := make([]domain.CategoryResult, 0, len(declared))
	for _, id := range declared {
		result, err := ce.computeCategory(id, decl, yc, sc)
		if err != nil {
			ce.logFailure(err, decl.Year)
			return nil, err
		}
		results = append(results, result)
	}

	ce.logger.Debug("calculation complete",
		zap.Int("year", decl.Year),
		zap.Int("categories", len(results)))

	return &domain.CalculationResult{
		Year:       decl.Year,
		Locale:     locale,
		Categories: results,
		Summary:    Combine(results),
		Labels:     ce.fieldLabels(locale),
	}, nil
}

func (ce *CalculationEngine) computeCategory(id domain.CategoryID, decl *domain.IncomeDeclaration, yc *domain.YearConfiguration, sc *SharedContext) (domain.CategoryResult, error) {
	calc, ok := ce.calculators[id]
	if !ok {
		return domain.CategoryResult{}, domain.CategoryUnsupportedf(yc.Year, id, "no calculator registered")
	}
	if id != domain.CategoryObligations {
		if _, ok := yc.Rules(id); !ok {
			return domain.CategoryResult{}, domain.CategoryUnsupportedf(yc.Year, id, "no rules for this year")
		}
	}
	return calc.Compute(decl, yc, sc)
}

func (ce *CalculationEngine) fieldLabels(locale string) map[string]string {
	labels := make(map[string]string, len(ResultFields))
	for _, field := range ResultFields {
		labels[field] = ce.labels(domain.LabelFieldPrefix+field, locale)
	}
	return labels
}

// logFailure records configuration faults for operators; callers only see the typed error
func (ce *CalculationEngine) logFailure(err error, year int) {
	var calcErr *domain.CalcError
	if !errors.As(err, &calcErr) || !errors.Is(err, domain.ErrConfigInvalid) {
		return
	}
	ce.logger.Error("invalid year configuration",
		zap.String("op", "calculation.Calculate"),
		zap.Int("year", year),
		zap.String("category", string(calcErr.Category)),
		zap.String("detail", calcErr.Msg))
}
