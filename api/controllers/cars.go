package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/api/responses"
	"github.com/garagelab/modstudio-backend/api/validators"
	"github.com/garagelab/modstudio-backend/internal/cars"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
	"github.com/garagelab/modstudio-backend/pkg/logger"
)

type carRegisterRequest struct {
	Make  string  `json:"make" validate:"required,min=1"`
	Model string  `json:"model" validate:"required,min=1"`
	Year  *int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Color *string `json:"color,omitempty"`
}

// CarRegister adds a vehicle to the customer's garage.
func CarRegister(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		var payload carRegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		car, err := svc.Register(r.Context(), customerID, cars.RegisterCarInput{
			Make:  payload.Make,
			Model: payload.Model,
			Year:  payload.Year,
			Color: payload.Color,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, car)
	}
}

// CarList returns every car the customer has registered.
func CarList(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
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

// CarGet returns one owned car by id.
func CarGet(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		carID, err := pathUUID(r, "carId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		car, err := svc.Get(r.Context(), customerID, carID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, car)
	}
}

// CarRemove deletes an owned car.
func CarRemove(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		carID, err := pathUUID(r, "carId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), customerID, carID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").
			WithDetails(map[string]any{"param": param})
	}
	return id, nil
}
