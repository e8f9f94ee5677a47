package appointments

import (
	"time"

	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// ScheduleInput books a studio visit.
type ScheduleInput struct {
	CarID       *uuid.UUID
	ServiceType enums.ServiceType
	ScheduledAt time.Time
	Notes       *string
}

// AppointmentDTO is the public projection of an appointment.
type AppointmentDTO struct {
	ID          uuid.UUID               `json:"id"`
	CustomerID  uuid.UUID               `json:"customer_id"`
	CarID       *uuid.UUID              `json:"car_id,omitempty"`
	ServiceType enums.ServiceType       `json:"service_type"`
	Status      enums.AppointmentStatus `json:"status"`
	ScheduledAt time.Time               `json:"scheduled_at"`
	Notes       *string                 `json:"notes,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

func toDTO(appt *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:          appt.ID,
		CustomerID:  appt.CustomerID,
		CarID:       appt.CarID,
		ServiceType: appt.ServiceType,
		Status:      appt.Status,
		ScheduledAt: appt.ScheduledAt,
		Notes:       appt.Notes,
		CreatedAt:   appt.CreatedAt,
	}
}
