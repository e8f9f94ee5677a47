package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/repo"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// Repository runs the aggregate read queries behind reports.
type Repository struct {
	repo.Base
}

// NewRepository constructs a reports repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// billTotal is the slim projection used for monthly bucketing.
type billTotal struct {
	CreatedAt time.Time
	Total     decimal.Decimal
}

// ListBillTotalsSince returns the customer's bill totals on or after the
// cutoff, oldest first. Bucketing by month happens in the service so the
// query stays portable across the postgres and sqlite dialects.
func (r *Repository) ListBillTotalsSince(ctx context.Context, customerID uuid.UUID, since time.Time) ([]billTotal, error) {
	var rows []billTotal
	err := r.DB(ctx).
		Model(&models.Bill{}).
		Select("created_at, total").
		Where("customer_id = ?", customerID).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountCustomers returns the number of registered customers.
func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}

// CountBills returns the number of finalized bills.
func (r *Repository) CountBills(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Bill{}).Count(&count).Error
	return count, err
}

// SumRevenue returns the grand total across all bills.
func (r *Repository) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	err := r.DB(ctx).
		Model(&models.Bill{}).
		Select("COALESCE(SUM(total), 0) AS revenue").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Revenue, nil
}

// CountActiveModifications returns how many catalog entries are live.
func (r *Repository) CountActiveModifications(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Modification{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

// CountScheduledAppointments returns how many appointments are still open.
func (r *Repository) CountScheduledAppointments(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Appointment{}).
		Where("status = ?", enums.AppointmentStatusScheduled).
		Count(&count).Error
	return count, err
}

// ListRecentBills returns the latest bills across all customers.
func (r *Repository) ListRecentBills(ctx context.Context, limit int) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.DB(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}
