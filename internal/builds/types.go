package builds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/internal/risk"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// QuoteInput selects the modifications a customer wants priced.
type QuoteInput struct {
	CarID           uuid.UUID
	ModificationIDs []uuid.UUID
	ColorID         *uuid.UUID
}

// CheckoutInput finalizes a quote into a bill.
type CheckoutInput struct {
	QuoteInput
	PaymentMethod enums.PaymentMethod
}

// QuoteItemDTO is one priced line with its risk assessment.
type QuoteItemDTO struct {
	ModificationID uuid.UUID         `json:"modification_id"`
	Name           string            `json:"name"`
	Category       enums.ModCategory `json:"category"`
	Price          decimal.Decimal   `json:"price"`
	Risk           risk.Result       `json:"risk"`
}

// QuoteDTO is the full pricing preview for a build.
type QuoteDTO struct {
	Items                 []QuoteItemDTO  `json:"items"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DiscountPercent       int             `json:"discount_percent"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	SubtotalAfterDiscount decimal.Decimal `json:"subtotal_after_discount"`
	GST                   decimal.Decimal `json:"gst"`
	Total                 decimal.Decimal `json:"total"`
	LoyaltyPointsEarned   int             `json:"loyalty_points_earned"`
}

// BillItemDTO is one installed line on a finalized bill.
type BillItemDTO struct {
	ModificationID *uuid.UUID        `json:"modification_id,omitempty"`
	Name           string            `json:"name"`
	Category       enums.ModCategory `json:"category"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	RiskScore      float64           `json:"risk_score"`
}

// BillDTO is the finalized checkout result, including the printable receipt.
type BillDTO struct {
	ID              uuid.UUID           `json:"id"`
	BillNumber      string              `json:"bill_number"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	CarID           *uuid.UUID          `json:"car_id,omitempty"`
	Items           []BillItemDTO       `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DiscountPercent int                 `json:"discount_percent"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	GST             decimal.Decimal     `json:"gst"`
	Total           decimal.Decimal     `json:"total"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	LoyaltyEarned   int                 `json:"loyalty_points_earned"`
	Text            string              `json:"text"`
	CreatedAt       time.Time           `json:"created_at"`
}
