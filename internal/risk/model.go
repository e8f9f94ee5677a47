package risk

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// Factor weights for the six sub-scores. Each sub-score sits on a 0-5 scale;
// the weighted mean is doubled onto the 1-10 scale callers see.
const (
	weightWarranty    = 3.0
	weightInsurance   = 2.5
	weightComplexity  = 2.0
	weightMaintenance = 1.5
	weightResale      = 1.0
	weightLegal       = 3.0
)

var premiumBrands = []string{"mercedes", "bmw", "audi", "porsche", "lexus"}

// CarSnapshot carries the car attributes the model reads. Year is nil when the
// customer never recorded it; the model then treats the car as brand new.
type CarSnapshot struct {
	Make string
	Year *int
}

// Result is the assessed risk for one modification on one car.
type Result struct {
	Score          float64         `json:"score"`
	Level          enums.RiskLevel `json:"level"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
}

// Interpretation is the human-readable banding of a score.
type Interpretation struct {
	Level          enums.RiskLevel `json:"level"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
}

// Assess scores one modification against a car on the 1-10 scale. Categories
// outside the catalog set degrade to documented defaults rather than failing,
// and the score is clamped before return. now must be the single clock read
// for the invocation; car age derives from it.
func Assess(category enums.ModCategory, price decimal.Decimal, car CarSnapshot, now time.Time) Result {
	age := carAge(car.Year, now)
	premium := isPremiumBrand(car.Make)

	weighted := warrantyRisk(category, age)*weightWarranty +
		insuranceRisk(category, price)*weightInsurance +
		complexityRisk(category)*weightComplexity +
		maintenanceRisk(category)*weightMaintenance +
		resaleRisk(category, premium)*weightResale +
		legalRisk(category, age)*weightLegal

	totalWeight := weightWarranty + weightInsurance + weightComplexity +
		weightMaintenance + weightResale + weightLegal

	score := weighted / totalWeight * 2
	score = clamp(score, 1, 10)
	score = math.Round(score*10) / 10

	interp := Interpret(score)
	return Result{
		Score:          score,
		Level:          interp.Level,
		Description:    interp.Description,
		Recommendation: interp.Recommendation,
	}
}

// Interpret bands a 1-10 score into the customer-facing guidance.
func Interpret(score float64) Interpretation {
	switch {
	case score <= 3:
		return Interpretation{
			Level:          enums.RiskLevelLow,
			Description:    "Safe modification with minimal impact",
			Recommendation: "Recommended for all users",
		}
	case score <= 6:
		return Interpretation{
			Level:          enums.RiskLevelMedium,
			Description:    "Moderate impact on warranty/insurance",
			Recommendation: "Consult with our experts before proceeding",
		}
	default:
		return Interpretation{
			Level:          enums.RiskLevelHigh,
			Description:    "Significant impact on warranty, insurance, and legality",
			Recommendation: "Professional consultation mandatory",
		}
	}
}

func carAge(year *int, now time.Time) int {
	if year == nil {
		return 0
	}
	return now.Year() - *year
}

func isPremiumBrand(make string) bool {
	lowered := strings.ToLower(make)
	for _, brand := range premiumBrands {
		if strings.Contains(lowered, brand) {
			return true
		}
	}
	return false
}

// warrantyRisk estimates how likely the modification voids coverage (0-5).
func warrantyRisk(category enums.ModCategory, age int) float64 {
	switch category {
	case enums.ModCategoryPerformance:
		if age < 3 {
			return 4.5
		}
		return 3.0
	case enums.ModCategoryTechnology:
		return 2.0
	case enums.ModCategorySafety:
		return 1.0
	case enums.ModCategoryComfort:
		return 1.5
	case enums.ModCategoryAesthetic:
		return 0.5
	case enums.ModCategoryColor:
		return 0.1
	default:
		return 2.0
	}
}

// insuranceRisk is price-tiered with category adjustments, clamped to 0-5.
func insuranceRisk(category enums.ModCategory, price decimal.Decimal) float64 {
	var base float64
	switch {
	case price.GreaterThan(decimal.NewFromInt(50000)):
		base = 4.0
	case price.GreaterThan(decimal.NewFromInt(20000)):
		base = 3.0
	case price.GreaterThan(decimal.NewFromInt(5000)):
		base = 2.0
	default:
		base = 1.0
	}

	switch category {
	case enums.ModCategoryPerformance:
		base += 1.0
	case enums.ModCategorySafety:
		base -= 0.5
	}
	return clamp(base, 0, 5)
}

func complexityRisk(category enums.ModCategory) float64 {
	switch category {
	case enums.ModCategoryPerformance:
		return 4.0
	case enums.ModCategoryTechnology:
		return 3.5
	case enums.ModCategorySafety:
		return 3.0
	case enums.ModCategoryComfort:
		return 2.5
	case enums.ModCategoryAesthetic:
		return 2.0
	case enums.ModCategoryColor:
		return 1.5
	default:
		return 2.5
	}
}

func maintenanceRisk(category enums.ModCategory) float64 {
	switch category {
	case enums.ModCategoryPerformance:
		return 3.5
	case enums.ModCategoryTechnology:
		return 3.0
	case enums.ModCategorySafety:
		return 2.0
	case enums.ModCategoryComfort:
		return 2.5
	case enums.ModCategoryAesthetic:
		return 1.5
	case enums.ModCategoryColor:
		return 1.0
	default:
		return 2.0
	}
}

func resaleRisk(category enums.ModCategory, premium bool) float64 {
	switch category {
	case enums.ModCategoryPerformance:
		if premium {
			return 2.5
		}
		return 3.5
	case enums.ModCategoryTechnology:
		return 2.0
	case enums.ModCategorySafety:
		return 1.0
	case enums.ModCategoryComfort:
		return 1.5
	case enums.ModCategoryAesthetic:
		if premium {
			return 3.0
		}
		return 2.0
	case enums.ModCategoryColor:
		return 4.0
	default:
		return 2.5
	}
}

// legalRisk keys performance off car age: older performance builds attract
// stricter compliance scrutiny.
func legalRisk(category enums.ModCategory, age int) float64 {
	switch category {
	case enums.ModCategoryPerformance:
		if age < 10 {
			return 3.5
		}
		return 4.0
	case enums.ModCategoryTechnology:
		return 1.0
	case enums.ModCategorySafety:
		return 0.5
	case enums.ModCategoryComfort:
		return 1.0
	case enums.ModCategoryAesthetic:
		return 2.0
	case enums.ModCategoryColor:
		return 3.0
	default:
		return 2.0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
