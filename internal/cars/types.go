package cars

import (
	"time"

	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
)

// RegisterCarInput carries the fields for a new vehicle registration.
type RegisterCarInput struct {
	Make  string
	Model string
	Year  *int
	Color *string
}

// CarDTO is the public projection of a registered vehicle.
type CarDTO struct {
	ID        uuid.UUID `json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      *int      `json:"year,omitempty"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(car *models.Car) CarDTO {
	return CarDTO{
		ID:        car.ID,
		Make:      car.Make,
		Model:     car.Model,
		Year:      car.Year,
		Color:     car.Color,
		CreatedAt: car.CreatedAt,
	}
}
