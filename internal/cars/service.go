package cars

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

// Vehicles older than this are unusual enough to reject as typos.
const oldestAcceptedYear = 1950

// ServiceParams groups dependencies for the car service.
type ServiceParams struct {
	CarRepo *Repository
	Now     func() time.Time
}

// Service exposes vehicle registration scoped to the owning customer.
type Service interface {
	Register(ctx context.Context, customerID uuid.UUID, input RegisterCarInput) (CarDTO, error)
	List(ctx context.Context, customerID uuid.UUID) ([]CarDTO, error)
	Get(ctx context.Context, customerID, carID uuid.UUID) (CarDTO, error)
	Remove(ctx context.Context, customerID, carID uuid.UUID) error
}

type service struct {
	carRepo *Repository
	now     func() time.Time
}

// NewService builds a car service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CarRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "car repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{carRepo: params.CarRepo, now: now}, nil
}

func (s *service) Register(ctx context.Context, customerID uuid.UUID, input RegisterCarInput) (CarDTO, error) {
	if customerID == uuid.Nil {
		return CarDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	carMake := strings.TrimSpace(input.Make)
	model := strings.TrimSpace(input.Model)
	if carMake == "" {
		return CarDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "car make is required")
	}
	if model == "" {
		return CarDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "car model is required")
	}
	if input.Year != nil {
		year := *input.Year
		if year < oldestAcceptedYear || year > s.now().Year()+1 {
			return CarDTO{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("car year must be between %d and %d", oldestAcceptedYear, s.now().Year()+1))
		}
	}

	car := &models.Car{
		ID:         uuid.New(),
		CustomerID: customerID,
		Make:       carMake,
		Model:      model,
		Year:       input.Year,
		Color:      input.Color,
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return CarDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create car")
	}
	return toDTO(car), nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]CarDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	records, err := s.carRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cars")
	}
	dtos := make([]CarDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, toDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, customerID, carID uuid.UUID) (CarDTO, error) {
	car, err := s.loadOwned(ctx, customerID, carID)
	if err != nil {
		return CarDTO{}, err
	}
	return toDTO(car), nil
}

func (s *service) Remove(ctx context.Context, customerID, carID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, customerID, carID); err != nil {
		return err
	}
	return s.carRepo.Delete(ctx, carID)
}

func (s *service) loadOwned(ctx context.Context, customerID, carID uuid.UUID) (*models.Car, error) {
	if customerID == uuid.Nil || carID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id and car id are required")
	}
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
