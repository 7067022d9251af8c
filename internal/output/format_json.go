package output

import (
	"encoding/json"

	"github.com/rgehrsitz/taxcalc/internal/domain"
)

// JSONFormatter emits the result with its fixed field names.
// Amounts are JSON numbers when decimal.MarshalJSONWithoutQuotes is set by the caller.
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if j.Indent {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
