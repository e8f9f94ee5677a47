package cars

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/repo"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
)

// Repository encapsulates car persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a car repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a car row.
func (r *Repository) Create(ctx context.Context, car *models.Car) error {
	return r.DB(ctx).Create(car).Error
}

// FindByID loads a car by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	var car models.Car
	if err := r.DB(ctx).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// ListByCustomer returns all cars registered by the customer, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Car, error) {
	var cars []models.Car
	err := r.DB(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// Delete removes the car row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Car{}, "id = ?", id).Error
}
