package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// GSTRate is the flat goods-and-services tax applied to every build.
var GSTRate = decimal.NewFromFloat(0.18)

// MaxDiscountPercent caps the stacked discount rules.
const MaxDiscountPercent = 30

var festivalMonths = map[time.Month]struct{}{
	time.January:  {},
	time.October:  {},
	time.December: {},
}

// LineItem is a priced catalog selection fed into the totals computation.
// It is a read-only snapshot; the engine never mutates it.
type LineItem struct {
	ID        uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Category  enums.ModCategory
}

// Result is the full money breakdown for a build. All fields are derived and
// produced fresh per computation.
type Result struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	DiscountPercent       int             `json:"discount_percent"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	SubtotalAfterDiscount decimal.Decimal `json:"subtotal_after_discount"`
	GST                   decimal.Decimal `json:"gst"`
	Total                 decimal.Decimal `json:"total"`
}

// ComputeTotals prices a set of selected modifications plus an optional color
// add-on. visitCount carries the customer's visit history when the checkout is
// authenticated; nil skips the loyalty tier entirely. now must be read once per
// invocation so the seasonal rule stays correct across month boundaries.
//
// Discount rules stack: volume (>=5 items +15, >=3 items +10), loyalty
// (>5 visits +10, >1 visit +5), seasonal (January/October/December +5). The
// summed percentage is capped at MaxDiscountPercent. Negative prices are not
// validated here; input validation belongs to the caller.
func ComputeTotals(items []LineItem, colorAddOn *LineItem, visitCount *int, now time.Time) Result {
	raw := decimal.Zero
	for _, item := range items {
		raw = raw.Add(item.UnitPrice)
	}
	if colorAddOn != nil {
		raw = raw.Add(colorAddOn.UnitPrice)
	}

	percent := volumeDiscount(len(items)) + loyaltyDiscount(visitCount) + seasonalDiscount(now)
	if percent > MaxDiscountPercent {
		percent = MaxDiscountPercent
	}

	discountAmount := decimal.Zero
	afterDiscount := raw
	if percent > 0 {
		discountAmount = raw.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100))
		afterDiscount = raw.Sub(discountAmount)
	}

	gst := afterDiscount.Mul(GSTRate)

	return Result{
		// Reconstructed rather than re-derived so it is bit-identical to the
		// pre-discount sum.
		Subtotal:              afterDiscount.Add(discountAmount),
		DiscountPercent:       percent,
		DiscountAmount:        discountAmount,
		SubtotalAfterDiscount: afterDiscount,
		GST:                   gst,
		Total:                 afterDiscount.Add(gst),
	}
}

// volumeDiscount applies the higher of the two item-count tiers only.
func volumeDiscount(itemCount int) int {
	switch {
	case itemCount >= 5:
		return 15
	case itemCount >= 3:
		return 10
	default:
		return 0
	}
}

func loyaltyDiscount(visitCount *int) int {
	if visitCount == nil {
		return 0
	}
	switch {
	case *visitCount > 5:
		return 10
	case *visitCount > 1:
		return 5
	default:
		return 0
	}
}

func seasonalDiscount(now time.Time) int {
	if _, ok := festivalMonths[now.Month()]; ok {
		return 5
	}
	return 0
}
