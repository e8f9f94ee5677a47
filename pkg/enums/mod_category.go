package enums

import "fmt"

// ModCategory represents the canonical modification categories in the catalog.
type ModCategory string

const (
	ModCategoryPerformance ModCategory = "performance"
	ModCategoryTechnology  ModCategory = "technology"
	ModCategorySafety      ModCategory = "safety"
	ModCategoryComfort     ModCategory = "comfort"
	ModCategoryAesthetic   ModCategory = "aesthetic"
	ModCategoryColor       ModCategory = "color"
)

var validModCategories = []ModCategory{
	ModCategoryPerformance,
	ModCategoryTechnology,
	ModCategorySafety,
	ModCategoryComfort,
	ModCategoryAesthetic,
	ModCategoryColor,
}

// String implements fmt.Stringer.
func (c ModCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ModCategory.
func (c ModCategory) IsValid() bool {
	for _, candidate := range validModCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseModCategory converts raw input into a ModCategory.
func ParseModCategory(value string) (ModCategory, error) {
	for _, candidate := range validModCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid modification category %q", value)
}

// ModCategories returns the full category set in declaration order.
func ModCategories() []ModCategory {
	out := make([]ModCategory, len(validModCategories))
	copy(out, validModCategories)
	return out
}
