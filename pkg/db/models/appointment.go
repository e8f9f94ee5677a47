package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// Appointment is a scheduled studio visit.
type Appointment struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID  uuid.UUID               `gorm:"column:customer_id;type:uuid;not null;index"`
	CarID       *uuid.UUID              `gorm:"column:car_id;type:uuid"`
	ServiceType enums.ServiceType       `gorm:"column:service_type;type:service_type;not null"`
	Status      enums.AppointmentStatus `gorm:"column:status;type:appointment_status;not null;default:'scheduled'"`
	ScheduledAt time.Time               `gorm:"column:scheduled_at;not null;index"`
	Notes       *string                 `gorm:"column:notes"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
