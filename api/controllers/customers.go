package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/api/middleware"
	"github.com/garagelab/modstudio-backend/api/responses"
	"github.com/garagelab/modstudio-backend/api/validators"
	"github.com/garagelab/modstudio-backend/internal/customers"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
	"github.com/garagelab/modstudio-backend/pkg/logger"
)

// CustomerProfile returns the authenticated customer's own profile.
func CustomerProfile(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		profile, err := svc.GetProfile(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type profileUpdateRequest struct {
	Name    string  `json:"name" validate:"required,min=1"`
	Phone   string  `json:"phone" validate:"required"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Pincode *string `json:"pincode,omitempty"`
}

// CustomerProfileUpdate adjusts the mutable profile fields.
func CustomerProfileUpdate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		var payload profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), customerID, customers.UpdateProfileInput{
			Name:    validators.SanitizeString(payload.Name, 120),
			Phone:   validators.SanitizeString(payload.Phone, 20),
			Address: payload.Address,
			City:    payload.City,
			State:   payload.State,
			Pincode: payload.Pincode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// requireCustomer extracts the authenticated customer id or writes a 401.
func requireCustomer(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer context missing"))
		return uuid.Nil, false
	}
	return customerID, true
}
