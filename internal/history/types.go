package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// BillSummaryDTO is one row in the customer's bill history listing.
type BillSummaryDTO struct {
	ID            uuid.UUID           `json:"id"`
	BillNumber    string              `json:"bill_number"`
	CarID         *uuid.UUID          `json:"car_id,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	ItemCount     int                 `json:"item_count"`
	CreatedAt     time.Time           `json:"created_at"`
}

// BillPageDTO is a cursor-paginated slice of bill history.
type BillPageDTO struct {
	Items      []BillSummaryDTO `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// BillLineDTO is one installed line on a finalized bill.
type BillLineDTO struct {
	ModificationID *uuid.UUID        `json:"modification_id,omitempty"`
	Name           string            `json:"name"`
	Category       enums.ModCategory `json:"category"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	RiskScore      float64           `json:"risk_score"`
}

// BillDetailDTO is the full money breakdown of one bill.
type BillDetailDTO struct {
	ID              uuid.UUID           `json:"id"`
	BillNumber      string              `json:"bill_number"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	CarID           *uuid.UUID          `json:"car_id,omitempty"`
	Items           []BillLineDTO       `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DiscountPercent int                 `json:"discount_percent"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	GST             decimal.Decimal     `json:"gst"`
	Total           decimal.Decimal     `json:"total"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	CreatedAt       time.Time           `json:"created_at"`
}

// CategoryStat is the aggregated purchase history for one category.
type CategoryStat struct {
	Category   enums.ModCategory `json:"category"`
	ItemCount  int               `json:"item_count"`
	TotalSpent decimal.Decimal   `json:"total_spent"`
	AvgPrice   decimal.Decimal   `json:"avg_price"`
}

// PurchaseProfile is the customer's aggregated modification history. It is
// the single input snapshot for scoring and classification.
type PurchaseProfile struct {
	CategoryFrequency map[enums.ModCategory]int             `json:"category_frequency"`
	CategoryAvgSpend  map[enums.ModCategory]decimal.Decimal `json:"category_avg_spend"`
	CategorySpend     map[enums.ModCategory]decimal.Decimal `json:"category_spend"`
	TotalItems        int                                   `json:"total_items"`
	TotalSpent        decimal.Decimal                       `json:"total_spent"`
}

