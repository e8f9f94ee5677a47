package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/repo"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	"github.com/garagelab/modstudio-backend/pkg/pagination"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a modification row.
func (r *Repository) Create(ctx context.Context, mod *models.Modification) error {
	return r.DB(ctx).Create(mod).Error
}

// Update persists the editable fields of a catalog entry.
func (r *Repository) Update(ctx context.Context, mod *models.Modification) error {
	return r.DB(ctx).
		Model(&models.Modification{}).
		Where("id = ?", mod.ID).
		Updates(map[string]any{
			"name":        mod.Name,
			"category":    mod.Category,
			"price":       mod.Price,
			"description": mod.Description,
		}).Error
}

// SetActive flips the visibility flag.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.DB(ctx).
		Model(&models.Modification{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// FindByID loads a catalog entry by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Modification, error) {
	var mod models.Modification
	if err := r.DB(ctx).First(&mod, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mod, nil
}

// FindActiveByIDs loads the active catalog entries matching the given IDs.
func (r *Repository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Modification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var mods []models.Modification
	err := r.DB(ctx).
		Where("id IN ?", ids).
		Where("is_active = ?", true).
		Find(&mods).Error
	if err != nil {
		return nil, err
	}
	return mods, nil
}

// ListActiveByCategory returns all active entries in a category, cheapest first.
func (r *Repository) ListActiveByCategory(ctx context.Context, category enums.ModCategory) ([]models.Modification, error) {
	var mods []models.Modification
	err := r.DB(ctx).
		Where("category = ?", category).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&mods).Error
	if err != nil {
		return nil, err
	}
	return mods, nil
}

// ListAllActive returns every active catalog entry.
func (r *Repository) ListAllActive(ctx context.Context) ([]models.Modification, error) {
	var mods []models.Modification
	err := r.DB(ctx).
		Where("is_active = ?", true).
		Order("category ASC, price ASC").
		Find(&mods).Error
	if err != nil {
		return nil, err
	}
	return mods, nil
}

// List returns a cursor-paginated catalog page.
func (r *Repository) List(ctx context.Context, filter ListFilter) (ModificationPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(filter.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(filter.Limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(filter.Cursor))
	if err != nil {
		return ModificationPageDTO{}, err
	}

	query := r.DB(ctx).Model(&models.Modification{})
	countQuery := r.DB(ctx).Model(&models.Modification{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
		countQuery = countQuery.Where("is_active = ?", true)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
		countQuery = countQuery.Where("category = ?", *filter.Category)
	}
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Modification
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).Error
	if err != nil {
		return ModificationPageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return ModificationPageDTO{}, err
	}

	items := make([]ModificationDTO, 0, len(resultRows))
	for i := range resultRows {
		items = append(items, toDTO(&resultRows[i]))
	}

	return ModificationPageDTO{
		Items:      items,
		NextCursor: nextCursor,
		Total:      int(total),
	}, nil
}

// Count returns how many catalog rows exist, active or not.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Modification{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
