package config

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rgehrsitz/taxcalc/configs"
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const minimalYear = `
year: 2030
status: provisional
categories:
  other:
    mode: flat
    flat_rate: 0.1
`

// gatedSource blocks every read until released
type gatedSource struct {
	release chan struct{}
	reads   atomic.Int32
	data    []byte
}

func (s *gatedSource) Read(year int) ([]byte, error) {
	s.reads.Add(1)
	<-s.release
	return s.data, nil
}

func (s *gatedSource) Years() ([]int, error) { return []int{2030}, nil }

func TestStore_LoadBuiltInYears(t *testing.T) {
	store := NewStore(NewFSSource(configs.Years, configs.YearsDir), nil)

	years, err := store.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025, 2026}, years)

	for _, year := range years {
		yc, err := store.Load(context.Background(), year)
		require.NoError(t, err, "year %d", year)
		assert.Equal(t, year, yc.Year)
		assert.NotNil(t, yc.CreditLadder)
	}
}

func TestStore_CachesForProcessLifetime(t *testing.T) {
	fsys := fstest.MapFS{"2030.yaml": {Data: []byte(minimalYear)}}
	store := NewStore(NewFSSource(fsys, "."), nil)

	first, err := store.Load(context.Background(), 2030)
	require.NoError(t, err)

	fsys["2030.yaml"] = &fstest.MapFile{Data: []byte("year: 2030\nstatus: bogus\n")}
	second, err := store.Load(context.Background(), 2030)
	require.NoError(t, err)

	assert.Same(t, first, second, "later documents are not picked up")
	assert.Equal(t, int64(1), store.Parses())
}

func TestStore_SingleFlightFirstLoad(t *testing.T) {
	source := &gatedSource{release: make(chan struct{}), data: []byte(minimalYear)}
	store := NewStore(source, nil)

	const callers = 32
	var wg sync.WaitGroup
	results := make([]*domain.YearConfiguration, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.Load(context.Background(), 2030)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(source.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, int32(1), source.reads.Load())
	assert.Equal(t, int64(1), store.Parses())
}

func TestStore_ContextCancelledWhileWaiting(t *testing.T) {
	source := &gatedSource{release: make(chan struct{}), data: []byte(minimalYear)}
	store := NewStore(source, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := store.Load(ctx, 2030)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(source.release)
	yc, err := store.Load(context.Background(), 2030)
	require.NoError(t, err)
	assert.Equal(t, 2030, yc.Year)
	assert.Equal(t, int64(1), store.Parses(), "the abandoned load still fills the cache")
}

func TestStore_ConfigNotFound(t *testing.T) {
	store := NewStore(NewFSSource(fstest.MapFS{}, "."), nil)

	_, err := store.Load(context.Background(), 2031)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))

	_, err = store.Load(context.Background(), 2031)
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
	assert.Equal(t, int64(1), store.Parses(), "failures are permanent and cached")
}

func TestStore_ConfigInvalidIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	fsys := fstest.MapFS{"2030.yaml": {Data: []byte(`
year: 2030
status: active
categories:
  employment:
    brackets:
      - {lower: 0, upper: 10000, rate: 0.2}
      - {lower: 5000, upper: null, rate: 0.3}
`)}}
	store := NewStore(NewFSSource(fsys, "."), zap.New(core))

	_, err := store.Load(context.Background(), 2030)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "config.Store.Load", fields["op"])
	assert.Equal(t, int64(2030), fields["year"])
	assert.Equal(t, "employment", fields["category"])
}

func TestParseYearConfiguration_RejectsUnknownFields(t *testing.T) {
	_, err := ParseYearConfiguration([]byte(minimalYear+"surprise: true\n"), 2030)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))

	_, err = ParseYearConfiguration([]byte(""), 2030)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}

func TestParseYearConfiguration_OpenBracket(t *testing.T) {
	yc, err := ParseYearConfiguration([]byte(`
year: 2030
status: active
categories:
  rental:
    brackets:
      - {lower: 0, upper: 12000, rate: 0.15}
      - {lower: 12000, upper: null, rate: 0.45}
`), 2030)
	require.NoError(t, err)

	rules, ok := yc.Rules(domain.CategoryRental)
	require.True(t, ok)
	require.Len(t, rules.Brackets, 2)
	assert.False(t, rules.Brackets[0].IsOpen())
	assert.True(t, rules.Brackets[1].IsOpen())
	assert.Equal(t, "0.45", rules.Brackets[1].Rate.String())
}

func TestFSSource_Years(t *testing.T) {
	fsys := fstest.MapFS{
		"years/2024.yaml":  {Data: []byte("x")},
		"years/2022.yaml":  {Data: []byte("x")},
		"years/notes.yaml": {Data: []byte("x")},
		"years/2023.json":  {Data: []byte("x")},
	}
	years, err := NewFSSource(fsys, "years").Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 2024}, years)
}
