package domain

// LabelFunc resolves the display string of a field key in a locale.
// It is read-only; the engine's arithmetic never depends on it.
type LabelFunc func(fieldKey, locale string) string

// Label key prefixes shared by the engine and the label catalogue
const (
	LabelFieldPrefix      = "field."
	LabelCategoryPrefix   = "category."
	LabelInvestmentPrefix = "investment."
	LabelObligationPrefix = "obligation."
)

// KeyLabel is a LabelFunc that echoes the key, used when no catalogue is wired
func KeyLabel(fieldKey, _ string) string {
	return fieldKey
}
