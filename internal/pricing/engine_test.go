package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

func mustItems(t *testing.T, prices ...float64) []LineItem {
	t.Helper()
	items := make([]LineItem, 0, len(prices))
	for _, price := range prices {
		items = append(items, LineItem{
			ID:        uuid.New(),
			Name:      "test mod",
			UnitPrice: decimal.NewFromFloat(price),
			Category:  enums.ModCategoryPerformance,
		})
	}
	return items
}

func intPtr(v int) *int {
	return &v
}

// nonFestival is a fixed clock inside a month with no seasonal discount.
var nonFestival = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

func TestComputeTotals_EmptyBuild(t *testing.T) {
	result := ComputeTotals(nil, nil, nil, nonFestival)

	if !result.Subtotal.IsZero() {
		t.Fatalf("expected zero subtotal, got %s", result.Subtotal)
	}
	if result.DiscountPercent != 0 {
		t.Fatalf("expected zero discount percent, got %d", result.DiscountPercent)
	}
	if !result.DiscountAmount.IsZero() {
		t.Fatalf("expected zero discount amount, got %s", result.DiscountAmount)
	}
	if !result.SubtotalAfterDiscount.IsZero() {
		t.Fatalf("expected zero subtotal after discount, got %s", result.SubtotalAfterDiscount)
	}
	if !result.GST.IsZero() {
		t.Fatalf("expected zero gst, got %s", result.GST)
	}
	if !result.Total.IsZero() {
		t.Fatalf("expected zero total, got %s", result.Total)
	}
}

func TestComputeTotals_VolumeTierOnly(t *testing.T) {
	items := mustItems(t, 1000, 1000, 1000)

	result := ComputeTotals(items, nil, intPtr(0), nonFestival)

	if result.DiscountPercent != 10 {
		t.Fatalf("expected 10%% discount, got %d", result.DiscountPercent)
	}
	if want := decimal.NewFromInt(300); !result.DiscountAmount.Equal(want) {
		t.Fatalf("expected discount amount %s, got %s", want, result.DiscountAmount)
	}
	if want := decimal.NewFromInt(2700); !result.SubtotalAfterDiscount.Equal(want) {
		t.Fatalf("expected subtotal after discount %s, got %s", want, result.SubtotalAfterDiscount)
	}
	if want := decimal.NewFromInt(486); !result.GST.Equal(want) {
		t.Fatalf("expected gst %s, got %s", want, result.GST)
	}
	if want := decimal.NewFromInt(3186); !result.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, result.Total)
	}
	if want := decimal.NewFromInt(3000); !result.Subtotal.Equal(want) {
		t.Fatalf("expected reported subtotal %s, got %s", want, result.Subtotal)
	}
}

func TestComputeTotals_StackedRulesCapAtThirty(t *testing.T) {
	items := mustItems(t, 2000, 2000, 2000, 2000, 2000)
	december := time.Date(2026, time.December, 5, 9, 0, 0, 0, time.UTC)

	result := ComputeTotals(items, nil, intPtr(10), december)

	// volume 15 + loyalty 10 + seasonal 5 = 30, already at the cap
	if result.DiscountPercent != 30 {
		t.Fatalf("expected capped 30%% discount, got %d", result.DiscountPercent)
	}
	if want := decimal.NewFromInt(3000); !result.DiscountAmount.Equal(want) {
		t.Fatalf("expected discount amount %s, got %s", want, result.DiscountAmount)
	}
	if want := decimal.NewFromInt(7000); !result.SubtotalAfterDiscount.Equal(want) {
		t.Fatalf("expected subtotal after discount %s, got %s", want, result.SubtotalAfterDiscount)
	}
	if want := decimal.NewFromInt(1260); !result.GST.Equal(want) {
		t.Fatalf("expected gst %s, got %s", want, result.GST)
	}
	if want := decimal.NewFromInt(8260); !result.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, result.Total)
	}
}

func TestComputeTotals_ColorAddOnJoinsSubtotal(t *testing.T) {
	items := mustItems(t, 5000)
	color := &LineItem{
		ID:        uuid.New(),
		Name:      "Red Metallic Paint",
		UnitPrice: decimal.NewFromInt(30000),
		Category:  enums.ModCategoryColor,
	}

	result := ComputeTotals(items, color, nil, nonFestival)

	// one item, unauthenticated, non-festival: no discount at all
	if result.DiscountPercent != 0 {
		t.Fatalf("expected no discount, got %d", result.DiscountPercent)
	}
	if want := decimal.NewFromInt(35000); !result.Subtotal.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, result.Subtotal)
	}
	if want := decimal.NewFromInt(6300); !result.GST.Equal(want) {
		t.Fatalf("expected gst %s, got %s", want, result.GST)
	}
}

func TestComputeTotals_LoyaltySkippedWhenVisitCountUnknown(t *testing.T) {
	items := mustItems(t, 1000, 1000, 1000)

	known := ComputeTotals(items, nil, intPtr(10), nonFestival)
	unknown := ComputeTotals(items, nil, nil, nonFestival)

	if known.DiscountPercent != 20 {
		t.Fatalf("expected 20%% for a loyal customer, got %d", known.DiscountPercent)
	}
	if unknown.DiscountPercent != 10 {
		t.Fatalf("expected 10%% for an unauthenticated checkout, got %d", unknown.DiscountPercent)
	}
}

func TestComputeTotals_LoyaltyTiers(t *testing.T) {
	items := mustItems(t, 1000)

	cases := []struct {
		name   string
		visits int
		want   int
	}{
		{name: "firstVisit", visits: 0, want: 0},
		{name: "singleVisit", visits: 1, want: 0},
		{name: "returning", visits: 2, want: 5},
		{name: "regular", visits: 5, want: 5},
		{name: "loyal", visits: 6, want: 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ComputeTotals(items, nil, intPtr(tc.visits), nonFestival)
			if result.DiscountPercent != tc.want {
				t.Fatalf("visits=%d: expected %d%%, got %d%%", tc.visits, tc.want, result.DiscountPercent)
			}
		})
	}
}

func TestComputeTotals_SeasonalMonths(t *testing.T) {
	items := mustItems(t, 1000)

	for month := time.January; month <= time.December; month++ {
		now := time.Date(2026, month, 10, 12, 0, 0, 0, time.UTC)
		result := ComputeTotals(items, nil, nil, now)

		want := 0
		switch month {
		case time.January, time.October, time.December:
			want = 5
		}
		if result.DiscountPercent != want {
			t.Fatalf("month %s: expected %d%%, got %d%%", month, want, result.DiscountPercent)
		}
	}
}

func TestComputeTotals_DiscountNeverExceedsCap(t *testing.T) {
	december := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)

	for itemCount := 0; itemCount <= 8; itemCount++ {
		prices := make([]float64, itemCount)
		for i := range prices {
			prices[i] = 1500
		}
		result := ComputeTotals(mustItems(t, prices...), nil, intPtr(20), december)

		if result.DiscountPercent < 0 || result.DiscountPercent > MaxDiscountPercent {
			t.Fatalf("items=%d: discount %d%% outside [0,%d]", itemCount, result.DiscountPercent, MaxDiscountPercent)
		}
		if result.Total.LessThan(result.SubtotalAfterDiscount) {
			t.Fatalf("items=%d: total %s below post-discount subtotal %s", itemCount, result.Total, result.SubtotalAfterDiscount)
		}
		if !result.Subtotal.Equal(result.SubtotalAfterDiscount.Add(result.DiscountAmount)) {
			t.Fatalf("items=%d: reported subtotal is not the reconstructed pre-discount sum", itemCount)
		}
	}
}

func TestComputeTotals_NegativePricesPassThrough(t *testing.T) {
	// The engine does not special-case negative prices; validation is the
	// caller's job.
	items := []LineItem{{
		ID:        uuid.New(),
		Name:      "refund line",
		UnitPrice: decimal.NewFromInt(-500),
		Category:  enums.ModCategoryAesthetic,
	}}

	result := ComputeTotals(items, nil, nil, nonFestival)
	if want := decimal.NewFromInt(-500); !result.Subtotal.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, result.Subtotal)
	}
}
