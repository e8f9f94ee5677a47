package customers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
)

// CustomerDTO is the public projection of a customer profile. CreatedAt
// doubles as the first visit.
type CustomerDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	State         string          `json:"state,omitempty"`
	Pincode       string          `json:"pincode,omitempty"`
	VisitCount    int             `json:"visit_count"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LoyaltyPoints int             `json:"loyalty_points"`
	LastVisitAt   *time.Time      `json:"last_visit_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// UpdateProfileInput carries the mutable profile fields. Address parts are
// optional; nil leaves the stored value untouched.
type UpdateProfileInput struct {
	Name    string
	Phone   string
	Address *string
	City    *string
	State   *string
	Pincode *string
}

// ToDTO strips credentials and internal flags from the model.
func ToDTO(customer *models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:            customer.ID,
		Name:          customer.Name,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Address:       customer.Address,
		City:          customer.City,
		State:         customer.State,
		Pincode:       customer.Pincode,
		VisitCount:    customer.VisitCount,
		TotalSpent:    customer.TotalSpent,
		LoyaltyPoints: customer.LoyaltyPoints,
		LastVisitAt:   customer.LastVisitAt,
		CreatedAt:     customer.CreatedAt,
	}
}
