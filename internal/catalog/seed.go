package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

type seedEntry struct {
	name        string
	price       int64
	category    enums.ModCategory
	description string
}

// The studio's standard install menu, loaded once into an empty catalog.
var seedCatalog = []seedEntry{
	{"Turbocharger Kit", 50000, enums.ModCategoryPerformance, "Increase engine power by 40%"},
	{"ECU Remap", 20000, enums.ModCategoryPerformance, "Optimize engine performance"},
	{"Sports Suspension", 30000, enums.ModCategoryPerformance, "Improved handling and stability"},
	{"Premium Leather Seats", 45000, enums.ModCategoryComfort, "Full leather interior upgrade"},
	{"Premium Sound System", 35000, enums.ModCategoryTechnology, "High-end audio system"},
	{"LED Headlights", 15000, enums.ModCategoryAesthetic, "Bright LED headlight kit"},
	{"Ceramic Coating", 25000, enums.ModCategoryAesthetic, "Paint protection coating"},
	{"Red Metallic Paint", 30000, enums.ModCategoryColor, "Premium metallic red color"},
	{"Blue Pearl Paint", 32000, enums.ModCategoryColor, "Pearl finish blue color"},
	{"Black Matte Paint", 35000, enums.ModCategoryColor, "Matte black finish"},
	{"Performance Exhaust", 28000, enums.ModCategoryPerformance, "Enhanced exhaust system"},
	{"Carbon Fiber Hood", 40000, enums.ModCategoryAesthetic, "Lightweight carbon fiber hood"},
	{"Sunroof", 35000, enums.ModCategoryComfort, "Electric sunroof installation"},
	{"Backup Camera", 12000, enums.ModCategoryTechnology, "Rear view camera system"},
	{"Parking Sensors", 8000, enums.ModCategoryTechnology, "Front and rear parking sensors"},
	{"Alloy Wheels", 25000, enums.ModCategoryAesthetic, "18-inch alloy wheels"},
	{"Window Tinting", 7000, enums.ModCategoryAesthetic, "Premium window tinting"},
	{"Dash Cam", 5000, enums.ModCategoryTechnology, "Front and rear dash camera"},
	{"Ambient Lighting", 9000, enums.ModCategoryAesthetic, "Interior ambient lighting"},
	{"Remote Start", 11000, enums.ModCategoryTechnology, "Keyless remote start system"},
}

// Seed loads the standard install menu when the catalog is empty. Re-running
// against a populated catalog is a no-op.
func (r *Repository) Seed(ctx context.Context) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	rows := make([]models.Modification, 0, len(seedCatalog))
	for _, entry := range seedCatalog {
		rows = append(rows, models.Modification{
			ID:          uuid.New(),
			Name:        entry.name,
			Category:    entry.category,
			Price:       decimal.NewFromInt(entry.price),
			Description: entry.description,
			IsActive:    true,
		})
	}
	if err := r.DB(ctx).Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
