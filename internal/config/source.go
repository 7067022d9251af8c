package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxcalc/internal/domain"
)

// yearFileExt is the extension of year configuration documents
const yearFileExt = ".yaml"

// Source supplies raw year configuration documents
type Source interface {
	// Read returns the document for year, or an error wrapping domain.ErrConfigNotFound
	Read(year int) ([]byte, error)
	// Years lists every year the source holds, ascending
	Years() ([]int, error)
}

// FSSource reads "<year>.yaml" documents from a directory of an fs.FS
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource creates a source over dir inside fsys
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

func (s *FSSource) Read(year int) ([]byte, error) {
	name := path.Join(s.dir, strconv.Itoa(year)+yearFileExt)
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ConfigNotFound(year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (s *FSSource) Years() ([]int, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}
	var years []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), yearFileExt) {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(e.Name(), yearFileExt))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}
