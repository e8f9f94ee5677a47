package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// Modification is a catalog entry the studio offers for installation.
type Modification struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string            `gorm:"column:name;not null;uniqueIndex"`
	Category    enums.ModCategory `gorm:"column:category;type:mod_category;not null;index"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	Description string            `gorm:"column:description;not null;default:''"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
