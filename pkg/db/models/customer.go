package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a registered studio client. Visit count, lifetime spend and
// loyalty points are maintained by checkout and feed the pricing and
// segmentation engines.
type Customer struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	Email         string          `gorm:"column:email;not null;uniqueIndex"`
	Phone         string          `gorm:"column:phone;not null"`
	PasswordHash  string          `gorm:"column:password_hash;not null"`
	Address       string          `gorm:"column:address;not null;default:''"`
	City          string          `gorm:"column:city;not null;default:''"`
	State         string          `gorm:"column:state;not null;default:''"`
	Pincode       string          `gorm:"column:pincode;not null;default:''"`
	VisitCount    int             `gorm:"column:visit_count;not null;default:0"`
	TotalSpent    decimal.Decimal `gorm:"column:total_spent;type:numeric(14,2);not null;default:0"`
	LoyaltyPoints int             `gorm:"column:loyalty_points;not null;default:0"`
	IsAdmin       bool            `gorm:"column:is_admin;not null;default:false"`
	LastVisitAt   *time.Time      `gorm:"column:last_visit_at"`
	Cars          []Car           `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
