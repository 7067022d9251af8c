package domain

// CategoryID names an income category or the flat obligations line
type CategoryID string

const (
	CategoryEmployment   CategoryID = "employment"
	CategoryPension      CategoryID = "pension"
	CategoryFreelance    CategoryID = "freelance"
	CategoryRental       CategoryID = "rental"
	CategoryAgricultural CategoryID = "agricultural"
	CategoryInvestment   CategoryID = "investment"
	CategoryOther        CategoryID = "other"
	CategoryObligations  CategoryID = "obligations"
)

// AllCategories lists every category in calculation order
var AllCategories = []CategoryID{
	CategoryEmployment,
	CategoryPension,
	CategoryFreelance,
	CategoryRental,
	CategoryAgricultural,
	CategoryInvestment,
	CategoryOther,
	CategoryObligations,
}

// Order returns the position of the category in calculation order; unknown ids sort last
func (c CategoryID) Order() int {
	for i, id := range AllCategories {
		if id == c {
			return i
		}
	}
	return len(AllCategories)
}

// IsIncome reports whether the category contributes to income totals
func (c CategoryID) IsIncome() bool {
	return c != CategoryObligations
}

// Valid reports whether c is a known category
func (c CategoryID) Valid() bool {
	return c.Order() < len(AllCategories)
}
