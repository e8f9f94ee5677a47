package insights

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/internal/recommend"
	"github.com/garagelab/modstudio-backend/internal/risk"
	"github.com/garagelab/modstudio-backend/internal/segment"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// RecommendationsInput selects how the shortlist is produced.
type RecommendationsInput struct {
	CarID uuid.UUID
	Limit int
}

// RecommendationsDTO is the ranked shortlist with the archetype that framed it.
type RecommendationsDTO struct {
	Archetype segment.Archetype  `json:"archetype"`
	Items     []recommend.Result `json:"items"`
}

// RiskInput selects the modifications to assess against a car.
type RiskInput struct {
	CarID           uuid.UUID
	ModificationIDs []uuid.UUID
}

// RiskItemDTO is the assessment of one modification.
type RiskItemDTO struct {
	ModificationID uuid.UUID         `json:"modification_id"`
	Name           string            `json:"name"`
	Category       enums.ModCategory `json:"category"`
	Price          decimal.Decimal   `json:"price"`
	Assessment     risk.Result       `json:"assessment"`
}

// RiskReportDTO is the full assessment for a selection.
type RiskReportDTO struct {
	Items         []RiskItemDTO `json:"items"`
	AverageScore  float64       `json:"average_score"`
	HighRiskCount int           `json:"high_risk_count"`
}

// SegmentDTO describes the archetype a customer classifies into.
type SegmentDTO struct {
	Archetype           segment.Archetype   `json:"archetype"`
	Name                string              `json:"name"`
	Description         string              `json:"description"`
	PreferredCategories []enums.ModCategory `json:"preferred_categories"`
	SpendRange          string              `json:"spend_range"`
	Tiers               segment.Tiers       `json:"tiers"`
}
