package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// Bill is the immutable record of a completed checkout. Monetary fields are
// snapshots of the pricing run that produced the bill; they are never
// recomputed after creation.
type Bill struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BillNumber      string              `gorm:"column:bill_number;not null;uniqueIndex"`
	CustomerID      uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	CarID           *uuid.UUID          `gorm:"column:car_id;type:uuid"`
	Subtotal        decimal.Decimal     `gorm:"column:subtotal;type:numeric(14,2);not null"`
	DiscountPercent int                 `gorm:"column:discount_percent;not null;default:0"`
	DiscountAmount  decimal.Decimal     `gorm:"column:discount_amount;type:numeric(14,2);not null;default:0"`
	GSTAmount       decimal.Decimal     `gorm:"column:gst_amount;type:numeric(14,2);not null"`
	Total           decimal.Decimal     `gorm:"column:total;type:numeric(14,2);not null"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null"`
	Items           []BillItem          `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime;index"`
}
