package appointments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/repo"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// Repository encapsulates appointment persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs an appointment repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new appointment row.
func (r *Repository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.DB(ctx).Create(appt).Error
}

// FindByID loads an appointment by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.DB(ctx).First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListByCustomer returns the customer's appointments, soonest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.DB(ctx).
		Where("customer_id = ?", customerID).
		Order("scheduled_at ASC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

// UpdateStatus transitions an appointment that is still in fromStatus. It
// reports whether a row actually changed, so callers can distinguish a lost
// race from success.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.AppointmentStatus) (bool, error) {
	result := r.DB(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
