package customers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/repo"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
)

// Repository encapsulates customer persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a customer repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new customer row.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.DB(ctx).Create(customer).Error
}

// FindByID loads a customer by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByEmail loads a customer by email, case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.DB(ctx).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateProfile persists the mutable profile fields. Nil address parts are
// left untouched.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) error {
	updates := map[string]any{"name": input.Name, "phone": input.Phone}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.City != nil {
		updates["city"] = *input.City
	}
	if input.State != nil {
		updates["state"] = *input.State
	}
	if input.Pincode != nil {
		updates["pincode"] = *input.Pincode
	}
	return r.DB(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// ApplyCheckout increments the loyalty counters and stamps the visit for a
// completed purchase. It must run inside the same transaction that writes
// the bill.
func ApplyCheckout(tx *gorm.DB, customerID uuid.UUID, total decimal.Decimal, loyaltyEarned int, visitedAt time.Time) error {
	return tx.
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]any{
			"visit_count":    gorm.Expr("visit_count + 1"),
			"total_spent":    gorm.Expr("total_spent + ?", total),
			"loyalty_points": gorm.Expr("loyalty_points + ?", loyaltyEarned),
			"last_visit_at":  visitedAt,
		}).
		Error
}
