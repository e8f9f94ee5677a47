package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/api/responses"
	"github.com/garagelab/modstudio-backend/api/validators"
	"github.com/garagelab/modstudio-backend/internal/appointments"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
	"github.com/garagelab/modstudio-backend/pkg/logger"
)

type appointmentScheduleRequest struct {
	CarID       *uuid.UUID `json:"car_id,omitempty"`
	ServiceType string     `json:"service_type" validate:"required"`
	ScheduledAt time.Time  `json:"scheduled_at" validate:"required"`
	Notes       *string    `json:"notes,omitempty"`
}

// AppointmentSchedule books a studio visit.
func AppointmentSchedule(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		var payload appointmentScheduleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		serviceType, err := enums.ParseServiceType(payload.ServiceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service type"))
			return
		}

		appt, err := svc.Schedule(r.Context(), customerID, appointments.ScheduleInput{
			CarID:       payload.CarID,
			ServiceType: serviceType,
			ScheduledAt: payload.ScheduledAt,
			Notes:       payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, appt)
	}
}

// AppointmentList returns the customer's appointments, soonest first.
func AppointmentList(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// AppointmentCancel moves a scheduled appointment to cancelled.
func AppointmentCancel(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return appointmentTransition(svc, logg, func(svc appointments.Service, r *http.Request, customerID, appointmentID uuid.UUID) (appointments.AppointmentDTO, error) {
		return svc.Cancel(r.Context(), customerID, appointmentID)
	})
}

// AppointmentComplete moves a scheduled appointment to completed.
func AppointmentComplete(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return appointmentTransition(svc, logg, func(svc appointments.Service, r *http.Request, customerID, appointmentID uuid.UUID) (appointments.AppointmentDTO, error) {
		return svc.Complete(r.Context(), customerID, appointmentID)
	})
}

func appointmentTransition(
	svc appointments.Service,
	logg *logger.Logger,
	apply func(appointments.Service, *http.Request, uuid.UUID, uuid.UUID) (appointments.AppointmentDTO, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		appointmentID, err := pathUUID(r, "appointmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appt, err := apply(svc, r, customerID, appointmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, appt)
	}
}
