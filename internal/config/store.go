package config

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rgehrsitz/taxcalc/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// Store loads each year's configuration once and serves the same immutable value for the
// lifetime of the process. Concurrent first loads of a year share one parse. Failures are
// cached too: a missing or invalid year stays that way until the process is redeployed.
type Store struct {
	source Source
	logger *zap.Logger

	entries sync.Map // int -> *entry
	group   singleflight.Group
	parses  atomic.Int64
}

type entry struct {
	config *domain.YearConfiguration
	err    error
}

// NewStore creates a store over a document source
func NewStore(source Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{source: source, logger: logger}
}

// Load returns the configuration for year.
// It fails with domain.ErrConfigNotFound or domain.ErrConfigInvalid.
func (s *Store) Load(ctx context.Context, year int) (*domain.YearConfiguration, error) {
	if e, ok := s.entries.Load(year); ok {
		return e.(*entry).result()
	}

	ch := s.group.DoChan(strconv.Itoa(year), func() (interface{}, error) {
		if e, ok := s.entries.Load(year); ok {
			return e, nil
		}
		e := s.parse(year)
		s.entries.Store(year, e)
		return e, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val.(*entry).result()
	}
}

// Years lists the years the underlying source provides
func (s *Store) Years() ([]int, error) {
	return s.source.Years()
}

// Parses reports how many documents have been parsed
func (s *Store) Parses() int64 {
	return s.parses.Load()
}

func (e *entry) result() (*domain.YearConfiguration, error) {
	return e.config, e.err
}

func (s *Store) parse(year int) *entry {
	s.parses.Add(1)

	data, err := s.source.Read(year)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			s.logger.Warn("year configuration not found", zap.Int("year", year))
		}
		return &entry{err: err}
	}

	yc, err := ParseYearConfiguration(data, year)
	if err != nil {
		var calcErr *domain.CalcError
		category := ""
		if errors.As(err, &calcErr) {
			category = string(calcErr.Category)
		}
		s.logger.Error("invalid year configuration",
			zap.String("op", "config.Store.Load"),
			zap.Int("year", year),
			zap.String("category", category),
			zap.Error(err))
		return &entry{err: err}
	}

	s.logger.Info("loaded year configuration",
		zap.Int("year", year),
		zap.String("status", string(yc.Status)),
		zap.Int("categories", len(yc.Categories)))
	return &entry{config: yc}
}

// ParseYearConfiguration decodes and validates one year document.
// Unknown fields are rejected so that misspelled rule sections cannot pass silently.
func ParseYearConfiguration(data []byte, year int) (*domain.YearConfiguration, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var yc domain.YearConfiguration
	if err := dec.Decode(&yc); err != nil {
		return nil, domain.ConfigInvalidf(year, "", "failed to parse YAML: %v", err)
	}
	if err := ValidateYearConfiguration(&yc, year); err != nil {
		return nil, err
	}
	return &yc, nil
}
