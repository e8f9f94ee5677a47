package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/cars"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

// ServiceParams groups dependencies for the appointments service.
type ServiceParams struct {
	AppointmentRepo *Repository
	CarRepo         *cars.Repository
	Now             func() time.Time
}

// Service manages the appointment lifecycle.
type Service interface {
	Schedule(ctx context.Context, customerID uuid.UUID, input ScheduleInput) (AppointmentDTO, error)
	List(ctx context.Context, customerID uuid.UUID) ([]AppointmentDTO, error)
	Cancel(ctx context.Context, customerID, appointmentID uuid.UUID) (AppointmentDTO, error)
	Complete(ctx context.Context, customerID, appointmentID uuid.UUID) (AppointmentDTO, error)
}

type service struct {
	appointmentRepo *Repository
	carRepo         *cars.Repository
	now             func() time.Time
}

// NewService builds an appointments service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AppointmentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "appointment repo is required")
	}
	if params.CarRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "car repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		appointmentRepo: params.AppointmentRepo,
		carRepo:         params.CarRepo,
		now:             now,
	}, nil
}

func (s *service) Schedule(ctx context.Context, customerID uuid.UUID, input ScheduleInput) (AppointmentDTO, error) {
	if customerID == uuid.Nil {
		return AppointmentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if !input.ServiceType.IsValid() {
		return AppointmentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown service type")
	}
	if input.ScheduledAt.IsZero() || !input.ScheduledAt.After(s.now()) {
		return AppointmentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "appointment must be in the future")
	}

	if input.CarID != nil {
		car, err := s.carRepo.FindByID(ctx, *input.CarID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AppointmentDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "car not found")
			}
			return AppointmentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load car")
		}
		if car.CustomerID != customerID {
			return AppointmentDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "car belongs to another customer")
		}
	}

	appt := &models.Appointment{
		ID:          uuid.New(),
		CustomerID:  customerID,
		CarID:       input.CarID,
		ServiceType: input.ServiceType,
		Status:      enums.AppointmentStatusScheduled,
		ScheduledAt: input.ScheduledAt.UTC(),
		Notes:       input.Notes,
	}
	if err := s.appointmentRepo.Create(ctx, appt); err != nil {
		return AppointmentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create appointment")
	}
	return toDTO(appt), nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]AppointmentDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	appts, err := s.appointmentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list appointments")
	}

	items := make([]AppointmentDTO, 0, len(appts))
	for i := range appts {
		items = append(items, toDTO(&appts[i]))
	}
	return items, nil
}

func (s *service) Cancel(ctx context.Context, customerID, appointmentID uuid.UUID) (AppointmentDTO, error) {
	return s.transition(ctx, customerID, appointmentID, enums.AppointmentStatusCancelled)
}

func (s *service) Complete(ctx context.Context, customerID, appointmentID uuid.UUID) (AppointmentDTO, error) {
	return s.transition(ctx, customerID, appointmentID, enums.AppointmentStatusCompleted)
}

// transition moves a scheduled appointment to a terminal status. Terminal
// states never change again.
func (s *service) transition(ctx context.Context, customerID, appointmentID uuid.UUID, to enums.AppointmentStatus) (AppointmentDTO, error) {
	appt, err := s.loadOwned(ctx, customerID, appointmentID)
	if err != nil {
		return AppointmentDTO{}, err
	}
	if appt.Status != enums.AppointmentStatusScheduled {
		return AppointmentDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict,
			"appointment is already "+appt.Status.String())
	}

	changed, err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, enums.AppointmentStatusScheduled, to)
	if err != nil {
		return AppointmentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update appointment status")
	}
	if !changed {
		return AppointmentDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict, "appointment status changed concurrently")
	}

	appt.Status = to
	return toDTO(appt), nil
}

func (s *service) loadOwned(ctx context.Context, customerID, appointmentID uuid.UUID) (*models.Appointment, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if appointmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "appointment id is required")
	}

	appt, err := s.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "appointment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load appointment")
	}
	if appt.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "appointment belongs to another customer")
	}
	return appt, nil
}
