package recommend

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

const (
	baseScore = 50
	// MinQualifyingScore is the cutoff below which a candidate never appears
	// in a recommendation list.
	MinQualifyingScore = 60
	// DefaultLimit is the list size used when the caller does not ask for one.
	DefaultLimit = 5
)

var priceFitBand = struct{ lo, hi decimal.Decimal }{
	lo: decimal.NewFromFloat(0.5),
	hi: decimal.NewFromFloat(1.5),
}

// Candidate is one catalog modification being scored for a customer.
type Candidate struct {
	ID          uuid.UUID
	Name        string
	Price       decimal.Decimal
	Category    enums.ModCategory
	Description string
}

// Profile is the customer's aggregated purchase history, supplied by the
// caller as a read-only snapshot.
type Profile struct {
	CategoryFrequency map[enums.ModCategory]int
	CategoryAvgSpend  map[enums.ModCategory]decimal.Decimal
}

// CarSnapshot carries the car attributes the scorer reads. A nil Year is
// treated as a current-year car.
type CarSnapshot struct {
	Make string
	Year *int
}

// Result is a qualified recommendation with its generated explanation.
type Result struct {
	ModificationID uuid.UUID         `json:"modification_id"`
	Name           string            `json:"name"`
	Category       enums.ModCategory `json:"category"`
	Price          decimal.Decimal   `json:"price"`
	Description    string            `json:"description,omitempty"`
	Score          int               `json:"score"`
	Reason         string            `json:"reason"`
}

// Score rates a candidate 0-100 for the profiled customer. Divisor guards are
// mandatory: an empty profile or zero average spend skips the price-fit
// adjustment instead of propagating NaN into the clamp.
func Score(candidate Candidate, profile Profile, car CarSnapshot, now time.Time) int {
	score := baseScore

	if freq, ok := profile.CategoryFrequency[candidate.Category]; ok {
		score += freq * 5
	}

	if avg := averageSpend(profile); avg.IsPositive() {
		ratio := candidate.Price.Div(avg.Mul(decimal.NewFromFloat(1.5)))
		switch {
		case ratio.GreaterThanOrEqual(priceFitBand.lo) && ratio.LessThanOrEqual(priceFitBand.hi):
			score += 20
		case ratio.LessThan(priceFitBand.lo):
			score += 10
		default:
			score -= 10
		}
	}

	age := carAge(car.Year, now)
	if candidate.Category == enums.ModCategoryPerformance && age < 5 {
		score += 10
	}
	if candidate.Category == enums.ModCategorySafety && age > 5 {
		score += 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Rank scores every candidate, keeps the ones at or above the qualifying
// cutoff, orders them by score descending (catalog order for ties), and
// truncates to limit.
func Rank(candidates []Candidate, profile Profile, car CarSnapshot, limit int, now time.Time) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	qualified := make([]Result, 0, len(candidates))
	for _, candidate := range candidates {
		score := Score(candidate, profile, car, now)
		if score < MinQualifyingScore {
			continue
		}
		qualified = append(qualified, Result{
			ModificationID: candidate.ID,
			Name:           candidate.Name,
			Category:       candidate.Category,
			Price:          candidate.Price,
			Description:    candidate.Description,
			Score:          score,
			Reason:         Explain(candidate, profile, car, now),
		})
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score > qualified[j].Score
	})

	if len(qualified) > limit {
		qualified = qualified[:limit]
	}
	return qualified
}

// Explain generates the customer-facing reason text. It is best-effort and
// never authoritative for ranking: at most two reasons joined by " | ", with a
// generic fallback when none apply.
func Explain(candidate Candidate, profile Profile, car CarSnapshot, now time.Time) string {
	var reasons []string

	if _, ok := profile.CategoryFrequency[candidate.Category]; ok {
		reasons = append(reasons, "Matches your preference for "+candidate.Category.String()+" modifications")
	}

	if candidate.Price.LessThan(decimal.NewFromInt(1000)) {
		reasons = append(reasons, "Budget-friendly option")
	} else if candidate.Price.GreaterThan(decimal.NewFromInt(3000)) {
		reasons = append(reasons, "Premium upgrade for enhanced experience")
	}

	if candidate.Category == enums.ModCategoryPerformance && carAge(car.Year, now) < 5 {
		reasons = append(reasons, "Ideal for newer car models")
	}

	if len(reasons) == 0 {
		return "Great value addition"
	}
	if len(reasons) > 2 {
		reasons = reasons[:2]
	}
	return strings.Join(reasons, " | ")
}

// averageSpend is the mean of the per-category averages, zero for an empty
// profile.
func averageSpend(profile Profile) decimal.Decimal {
	if len(profile.CategoryAvgSpend) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, avg := range profile.CategoryAvgSpend {
		total = total.Add(avg)
	}
	return total.Div(decimal.NewFromInt(int64(len(profile.CategoryAvgSpend))))
}

func carAge(year *int, now time.Time) int {
	if year == nil {
		return 0
	}
	return now.Year() - *year
}
