package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfigNotFound      = errors.New("year configuration not found")
	ErrConfigInvalid       = errors.New("year configuration invalid")
	ErrCategoryUnsupported = errors.New("category unsupported")
)

// CalcError carries the failure kind together with where it happened
type CalcError struct {
	Kind     error
	Year     int
	Category CategoryID
	Msg      string
}

func (e *CalcError) Error() string {
	if e == nil {
		return ""
	}
	prefix := e.Kind.Error()
	if e.Year != 0 {
		prefix = fmt.Sprintf("%s (year %d)", prefix, e.Year)
	}
	if e.Category != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, e.Category)
	}
	if e.Msg == "" {
		return prefix
	}
	return prefix + ": " + e.Msg
}

func (e *CalcError) Unwrap() error { return e.Kind }

// ConfigNotFound reports that no ruleset exists for year
func ConfigNotFound(year int) error {
	return &CalcError{Kind: ErrConfigNotFound, Year: year}
}

// ConfigInvalidf reports a malformed ruleset or a toggle with no matching rule
func ConfigInvalidf(year int, category CategoryID, format string, args ...any) error {
	return &CalcError{Kind: ErrConfigInvalid, Year: year, Category: category, Msg: fmt.Sprintf(format, args...)}
}

// CategoryUnsupportedf reports a declared category the year cannot calculate
func CategoryUnsupportedf(year int, category CategoryID, format string, args ...any) error {
	return &CalcError{Kind: ErrCategoryUnsupported, Year: year, Category: category, Msg: fmt.Sprintf(format, args...)}
}
