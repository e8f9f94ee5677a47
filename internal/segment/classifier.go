package segment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// Archetype is one of the fixed customer segmentation labels.
type Archetype string

const (
	ArchetypePerformanceSeeker Archetype = "performance_seeker"
	ArchetypeDailyComfort      Archetype = "daily_comfort"
	ArchetypeLuxuryAesthetic   Archetype = "luxury_aesthetic"
)

var validArchetypes = []Archetype{
	ArchetypePerformanceSeeker,
	ArchetypeDailyComfort,
	ArchetypeLuxuryAesthetic,
}

// String implements fmt.Stringer.
func (a Archetype) String() string {
	return string(a)
}

// IsValid reports whether the value is a known Archetype.
func (a Archetype) IsValid() bool {
	for _, candidate := range validArchetypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseArchetype converts raw input into an Archetype.
func ParseArchetype(value string) (Archetype, error) {
	for _, candidate := range validArchetypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid archetype %q", value)
}

// Tiers is the static three-tier modification shortlist for an archetype.
type Tiers struct {
	MustHave       []string `json:"must_have"`
	Recommended    []string `json:"recommended"`
	BudgetFriendly []string `json:"budget_friendly"`
}

// Record carries the descriptive configuration data for one archetype. These
// records are constants, not computed.
type Record struct {
	Archetype           Archetype           `json:"archetype"`
	Name                string              `json:"name"`
	Description         string              `json:"description"`
	PreferredCategories []enums.ModCategory `json:"preferred_categories"`
	SpendRange          string              `json:"spend_range"`
	Tiers               Tiers               `json:"tiers"`
}

var records = map[Archetype]Record{
	ArchetypePerformanceSeeker: {
		Archetype:   ArchetypePerformanceSeeker,
		Name:        "Performance Seeker",
		Description: "Focuses on speed, power, and handling improvements",
		PreferredCategories: []enums.ModCategory{
			enums.ModCategoryPerformance,
			enums.ModCategorySafety,
		},
		SpendRange: "High ($50,000+)",
		Tiers: Tiers{
			MustHave:       []string{"Turbocharger Kit", "Performance Exhaust", "Sports Suspension"},
			Recommended:    []string{"ECU Remap", "Advanced Brake System", "Lightweight Wheels"},
			BudgetFriendly: []string{"Air Intake System", "Performance Chip", "Strut Bar"},
		},
	},
	ArchetypeDailyComfort: {
		Archetype:   ArchetypeDailyComfort,
		Name:        "Daily Comfort",
		Description: "Prioritizes comfort, convenience, and reliability",
		PreferredCategories: []enums.ModCategory{
			enums.ModCategoryComfort,
			enums.ModCategoryTechnology,
		},
		SpendRange: "Medium ($20,000-$50,000)",
		Tiers: Tiers{
			MustHave:       []string{"Premium Leather Seats", "Premium Sound System", "Sunroof"},
			Recommended:    []string{"Climate Control", "Noise Insulation", "Backup Camera"},
			BudgetFriendly: []string{"Seat Covers", "Steering Wheel Cover", "Car Organizer"},
		},
	},
	ArchetypeLuxuryAesthetic: {
		Archetype:   ArchetypeLuxuryAesthetic,
		Name:        "Luxury / Aesthetic",
		Description: "Focuses on looks, luxury features, and visual appeal",
		PreferredCategories: []enums.ModCategory{
			enums.ModCategoryAesthetic,
			enums.ModCategoryColor,
			enums.ModCategoryComfort,
		},
		SpendRange: "High ($50,000+)",
		Tiers: Tiers{
			MustHave:       []string{"Ceramic Coating", "Custom Paint Job", "LED Headlight Kit"},
			Recommended:    []string{"Body Kit", "Carbon Fiber Hood", "Ambient Lighting"},
			BudgetFriendly: []string{"Window Tinting", "Alloy Wheel Covers", "Dash Cam"},
		},
	},
}

// Classify maps aggregated per-category spend onto exactly one archetype.
// Rules fire in order, first match wins: customers with no purchase history
// default to daily comfort, dominant performance spend (>40%) wins next, then
// dominant aesthetic spend (>30%).
func Classify(perCategorySpend map[enums.ModCategory]decimal.Decimal, totalSpent decimal.Decimal) Archetype {
	if totalSpent.IsZero() || totalSpent.IsNegative() {
		return ArchetypeDailyComfort
	}

	performanceRatio := perCategorySpend[enums.ModCategoryPerformance].Div(totalSpent)
	if performanceRatio.GreaterThan(decimal.NewFromFloat(0.4)) {
		return ArchetypePerformanceSeeker
	}

	aestheticRatio := perCategorySpend[enums.ModCategoryAesthetic].Div(totalSpent)
	if aestheticRatio.GreaterThan(decimal.NewFromFloat(0.3)) {
		return ArchetypeLuxuryAesthetic
	}

	return ArchetypeDailyComfort
}

// RecordFor returns the archetype's static configuration record. Unknown
// values fall back to the daily-comfort record so callers always get a
// complete bundle.
func RecordFor(archetype Archetype) Record {
	if record, ok := records[archetype]; ok {
		return record
	}
	return records[ArchetypeDailyComfort]
}

// RecommendationsFor returns the archetype's three-tier shortlist.
func RecommendationsFor(archetype Archetype) Tiers {
	return RecordFor(archetype).Tiers
}
