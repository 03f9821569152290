package roadmap

// Category classifies the kind of work an initiative represents.
// The zero value is not a valid category.
type Category struct {
	value string
}

var (
	CategoryFeature        = Category{value: "feature"}
	CategoryEnhancement    = Category{value: "enhancement"}
	CategoryTechDebt       = Category{value: "tech-debt"}
	CategoryBugFix         = Category{value: "bug-fix"}
	CategoryResearch       = Category{value: "research"}
	CategoryInfrastructure = Category{value: "infrastructure"}
)

var allCategories = []Category{
	CategoryFeature,
	CategoryEnhancement,
	CategoryTechDebt,
	CategoryBugFix,
	CategoryResearch,
	CategoryInfrastructure,
}

// ParseCategory converts a free-form string into a Category.
func ParseCategory(s string) (Category, error) {
	key := enumKey(s)
	for _, candidate := range allCategories {
		if enumKey(candidate.value) == key {
			return candidate, nil
		}
	}

	return Category{}, unknownEnumValue("category", s)
}

// AllCategories returns every known Category.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)

	return out
}

func (c Category) String() string {
	return c.value
}

func (c Category) Equals(other Category) bool {
	return c.value == other.value
}

func (c Category) IsZero() bool {
	return c.value == ""
}

func (c Category) IsFeature() bool {
	return c == CategoryFeature
}

func (c Category) IsEnhancement() bool {
	return c == CategoryEnhancement
}

func (c Category) IsTechDebt() bool {
	return c == CategoryTechDebt
}

func (c Category) IsBugFix() bool {
	return c == CategoryBugFix
}

func (c Category) IsResearch() bool {
	return c == CategoryResearch
}

func (c Category) IsInfrastructure() bool {
	return c == CategoryInfrastructure
}
