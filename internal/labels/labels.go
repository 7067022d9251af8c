// Package labels provides the bilingual display labels decorating calculation output.
package labels

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// FallbackLocale is consulted when a key is missing from the requested locale
const FallbackLocale = "en"

//go:embed catalog.yaml
var embeddedCatalog []byte

// Catalog maps locale -> key -> display string. It is read-only after construction.
type Catalog struct {
	entries map[string]map[string]string
}

// Default returns the catalogue compiled into the binary
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Parse builds a catalogue from a YAML document
func Parse(data []byte) (*Catalog, error) {
	var entries map[string]map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse label catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("label catalog is empty")
	}
	return &Catalog{entries: entries}, nil
}

// Lookup resolves key in locale, falling back to English and then to the key itself
func (c *Catalog) Lookup(key, locale string) string {
	if s, ok := c.entries[locale][key]; ok {
		return s
	}
	if s, ok := c.entries[FallbackLocale][key]; ok {
		return s
	}
	return key
}

// Locales lists the locales present in the catalogue
func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.entries))
	for l := range c.entries {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}
