package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// BillItem snapshots one installed modification on a bill. Name, category and
// price are copied from the catalog at checkout so later catalog edits do not
// rewrite history. RiskScore records the assessment shown to the customer at
// purchase time.
type BillItem struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BillID         uuid.UUID         `gorm:"column:bill_id;type:uuid;not null;index"`
	ModificationID *uuid.UUID        `gorm:"column:modification_id;type:uuid"`
	Name           string            `gorm:"column:name;not null"`
	Category       enums.ModCategory `gorm:"column:category;type:mod_category;not null"`
	UnitPrice      decimal.Decimal   `gorm:"column:unit_price;type:numeric(12,2);not null"`
	RiskScore      float64           `gorm:"column:risk_score;type:numeric(3,1);not null;default:0"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
}
