package history

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/repo"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/pagination"
)

// Repository reads finalized bills and their aggregates.
type Repository struct {
	repo.Base
}

// NewRepository constructs a history repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListByCustomer returns one cursor page of the customer's bills, newest
// first, with items preloaded.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor string, limit int) ([]models.Bill, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.DB(ctx).
		Model(&models.Bill{}).
		Where("customer_id = ?", customerID)
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Bill
	err = query.
		Preload("Items").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return records, nextCursor, nil
}

// FindByID loads one bill with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	err := r.DB(ctx).
		Preload("Items").
		First(&bill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// AggregateCategoryStats groups the customer's purchased items by category,
// biggest spend first.
func (r *Repository) AggregateCategoryStats(ctx context.Context, customerID uuid.UUID) ([]CategoryStat, error) {
	var stats []CategoryStat
	err := r.DB(ctx).
		Table("bill_items").
		Select("bill_items.category AS category, COUNT(*) AS item_count, SUM(bill_items.unit_price) AS total_spent, AVG(bill_items.unit_price) AS avg_price").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.customer_id = ?", customerID).
		Group("bill_items.category").
		Order("total_spent DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
