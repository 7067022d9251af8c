package calculation

import (
	"context"
	"io/fs"
	"path"
	"strconv"
	"sync"
	"testing"

	"github.com/rgehrsitz/taxcalc/configs"
	"github.com/rgehrsitz/taxcalc/internal/config"
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	builtInOnce sync.Once
	builtIn     map[int]*domain.YearConfiguration
	builtInErr  error
)

// builtInYear returns one of the shipped year configurations
func builtInYear(t *testing.T, year int) *domain.YearConfiguration {
	t.Helper()
	builtInOnce.Do(func() {
		builtIn = map[int]*domain.YearConfiguration{}
		for _, y := range []int{2024, 2025, 2026} {
			data, err := fs.ReadFile(configs.Years, path.Join(configs.YearsDir, strconv.Itoa(y)+".yaml"))
			if err != nil {
				builtInErr = err
				return
			}
			yc, err := config.ParseYearConfiguration(data, y)
			if err != nil {
				builtInErr = err
				return
			}
			builtIn[y] = yc
		}
	})
	require.NoError(t, builtInErr)
	yc, ok := builtIn[year]
	require.True(t, ok, "no built-in configuration for %d", year)
	return yc
}

// staticLoader serves fixed configurations
type staticLoader map[int]*domain.YearConfiguration

func (l staticLoader) Load(_ context.Context, year int) (*domain.YearConfiguration, error) {
	yc, ok := l[year]
	if !ok {
		return nil, domain.ConfigNotFound(year)
	}
	return yc, nil
}

func shared(dependents int) *SharedContext {
	return &SharedContext{Dependents: dependents, Locale: "en", Label: domain.KeyLabel}
}

func noContributions() *bool {
	f := false
	return &f
}

// simpleBrackets is a three-slice table: 10% to 10k, 20% to 20k, 30% above
func simpleBrackets() []domain.Bracket {
	return []domain.Bracket{
		{Lower: d("0"), Upper: domain.Ptr(d("10000")), Rate: d("0.10")},
		{Lower: d("10000"), Upper: domain.Ptr(d("20000")), Rate: d("0.20")},
		{Lower: d("20000"), Upper: nil, Rate: d("0.30")},
	}
}
