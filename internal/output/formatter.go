package output

import (
	"strings"

	"github.com/rgehrsitz/taxcalc/internal/domain"
)

// Formatter renders a calculation result
type Formatter interface {
	Name() string
	Format(result *domain.CalculationResult) ([]byte, error)
}

// Formatters lists every available formatter
func Formatters() []Formatter {
	return []Formatter{
		JSONFormatter{Indent: true},
		CSVFormatter{},
		TableFormatter{},
	}
}

// GetFormatterByName returns the formatter with the given name, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range Formatters() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FormatterNames lists the accepted formatter names
func FormatterNames() []string {
	var names []string
	for _, f := range Formatters() {
		names = append(names, f.Name())
	}
	return names
}

// label returns the display label for a result field, or the field name when the result has none
func label(result *domain.CalculationResult, field string) string {
	if l, ok := result.Labels[field]; ok && l != "" {
		return l
	}
	return field
}
