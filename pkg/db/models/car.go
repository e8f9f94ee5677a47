package models

import (
	"time"

	"github.com/google/uuid"
)

// Car is a vehicle registered against a customer. Year is optional because
// walk-in registrations frequently omit it; risk scoring treats a missing
// year as a brand-new vehicle.
type Car struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index"`
	Make       string    `gorm:"column:make;not null"`
	Model      string    `gorm:"column:model;not null"`
	Year       *int      `gorm:"column:year"`
	Color      *string   `gorm:"column:color"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
