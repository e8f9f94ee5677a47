package insights

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/cars"
	"github.com/garagelab/modstudio-backend/internal/catalog"
	"github.com/garagelab/modstudio-backend/internal/history"
	"github.com/garagelab/modstudio-backend/internal/recommend"
	"github.com/garagelab/modstudio-backend/internal/risk"
	"github.com/garagelab/modstudio-backend/internal/segment"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

const defaultRecommendationLimit = 5

// ProfileSource supplies the aggregated purchase history for a customer.
type ProfileSource interface {
	Profile(ctx context.Context, customerID uuid.UUID) (history.PurchaseProfile, error)
}

// ServiceParams groups dependencies for the insights service.
type ServiceParams struct {
	Profiles    ProfileSource
	CatalogRepo *catalog.Repository
	CarRepo     *cars.Repository
	Now         func() time.Time
}

// Service runs the scoring engines over a customer's history.
type Service interface {
	Recommendations(ctx context.Context, customerID uuid.UUID, input RecommendationsInput) (RecommendationsDTO, error)
	AssessRisk(ctx context.Context, customerID uuid.UUID, input RiskInput) (RiskReportDTO, error)
	Segment(ctx context.Context, customerID uuid.UUID) (SegmentDTO, error)
}

type service struct {
	profiles    ProfileSource
	catalogRepo *catalog.Repository
	carRepo     *cars.Repository
	now         func() time.Time
}

// NewService builds an insights service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile source is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.CarRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "car repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		profiles:    params.Profiles,
		catalogRepo: params.CatalogRepo,
		carRepo:     params.CarRepo,
		now:         now,
	}, nil
}

func (s *service) Recommendations(ctx context.Context, customerID uuid.UUID, input RecommendationsInput) (RecommendationsDTO, error) {
	if customerID == uuid.Nil {
		return RecommendationsDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	profile, err := s.profiles.Profile(ctx, customerID)
	if err != nil {
		return RecommendationsDTO{}, err
	}

	carSnapshot := recommend.CarSnapshot{}
	if input.CarID != uuid.Nil {
		car, err := s.loadOwnedCar(ctx, customerID, input.CarID)
		if err != nil {
			return RecommendationsDTO{}, err
		}
		carSnapshot = recommend.CarSnapshot{Make: car.Make, Year: car.Year}
	}

	mods, err := s.catalogRepo.ListAllActive(ctx)
	if err != nil {
		return RecommendationsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}
	candidates := make([]recommend.Candidate, 0, len(mods))
	for i := range mods {
		candidates = append(candidates, recommend.Candidate{
			ID:          mods[i].ID,
			Name:        mods[i].Name,
			Price:       mods[i].Price,
			Category:    mods[i].Category,
			Description: mods[i].Description,
		})
	}

	scorerProfile := recommend.Profile{
		CategoryFrequency: profile.CategoryFrequency,
		CategoryAvgSpend:  profile.CategoryAvgSpend,
	}
	ranked := recommend.Rank(candidates, scorerProfile, carSnapshot, limit, s.now().UTC())
	archetype := segment.Classify(profile.CategorySpend, profile.TotalSpent)

	return RecommendationsDTO{Archetype: archetype, Items: ranked}, nil
}

func (s *service) AssessRisk(ctx context.Context, customerID uuid.UUID, input RiskInput) (RiskReportDTO, error) {
	if customerID == uuid.Nil {
		return RiskReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if len(input.ModificationIDs) == 0 {
		return RiskReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "at least one modification is required")
	}
	seen := map[uuid.UUID]bool{}
	for _, id := range input.ModificationIDs {
		if id == uuid.Nil {
			return RiskReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "modification id is required")
		}
		if seen[id] {
			return RiskReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "duplicate modification in selection")
		}
		seen[id] = true
	}

	carSnapshot := risk.CarSnapshot{}
	if input.CarID != uuid.Nil {
		car, err := s.loadOwnedCar(ctx, customerID, input.CarID)
		if err != nil {
			return RiskReportDTO{}, err
		}
		carSnapshot = risk.CarSnapshot{Make: car.Make, Year: car.Year}
	}

	mods, err := s.catalogRepo.FindActiveByIDs(ctx, input.ModificationIDs)
	if err != nil {
		return RiskReportDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load modifications")
	}
	if len(mods) != len(input.ModificationIDs) {
		return RiskReportDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "modification not found or inactive")
	}

	now := s.now().UTC()
	report := RiskReportDTO{Items: make([]RiskItemDTO, 0, len(mods))}
	scoreSum := 0.0
	for i := range mods {
		assessment := risk.Assess(mods[i].Category, mods[i].Price, carSnapshot, now)
		scoreSum += assessment.Score
		if assessment.Level == enums.RiskLevelHigh {
			report.HighRiskCount++
		}
		report.Items = append(report.Items, RiskItemDTO{
			ModificationID: mods[i].ID,
			Name:           mods[i].Name,
			Category:       mods[i].Category,
			Price:          mods[i].Price,
			Assessment:     assessment,
		})
	}
	report.AverageScore = math.Round(scoreSum/float64(len(mods))*10) / 10
	return report, nil
}

func (s *service) Segment(ctx context.Context, customerID uuid.UUID) (SegmentDTO, error) {
	if customerID == uuid.Nil {
		return SegmentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	profile, err := s.profiles.Profile(ctx, customerID)
	if err != nil {
		return SegmentDTO{}, err
	}

	archetype := segment.Classify(profile.CategorySpend, profile.TotalSpent)
	record := segment.RecordFor(archetype)
	return SegmentDTO{
		Archetype:           record.Archetype,
		Name:                record.Name,
		Description:         record.Description,
		PreferredCategories: record.PreferredCategories,
		SpendRange:          record.SpendRange,
		Tiers:               record.Tiers,
	}, nil
}

func (s *service) loadOwnedCar(ctx context.Context, customerID, carID uuid.UUID) (*models.Car, error) {
	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "car not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load car")
	}
	if car.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "car belongs to another customer")
	}
	return car, nil
}
