package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// ModificationDTO is the public projection of a catalog entry.
type ModificationDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Category    enums.ModCategory `json:"category"`
	Price       decimal.Decimal   `json:"price"`
	Description string            `json:"description"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ModificationPageDTO is a cursor-paginated catalog view.
type ModificationPageDTO struct {
	Items      []ModificationDTO `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
	Total      int               `json:"total"`
}

// ListFilter narrows catalog listings.
type ListFilter struct {
	Category *enums.ModCategory
	Cursor   string
	Limit    int
	// IncludeInactive is only honoured for admin listings.
	IncludeInactive bool
}

// UpsertModificationInput carries the admin-editable catalog fields.
type UpsertModificationInput struct {
	Name        string
	Category    enums.ModCategory
	Price       decimal.Decimal
	Description string
}

func toDTO(m *models.Modification) ModificationDTO {
	return ModificationDTO{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Price:       m.Price,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}
