package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/api/responses"
	"github.com/garagelab/modstudio-backend/api/validators"
	"github.com/garagelab/modstudio-backend/internal/builds"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
	"github.com/garagelab/modstudio-backend/pkg/logger"
)

type buildSelectionRequest struct {
	CarID           uuid.UUID   `json:"car_id" validate:"required"`
	ModificationIDs []uuid.UUID `json:"modification_ids" validate:"required,min=1"`
	ColorID         *uuid.UUID  `json:"color_id,omitempty"`
}

func (req buildSelectionRequest) toInput() builds.QuoteInput {
	return builds.QuoteInput{
		CarID:           req.CarID,
		ModificationIDs: req.ModificationIDs,
		ColorID:         req.ColorID,
	}
}

type buildCheckoutRequest struct {
	buildSelectionRequest
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// BuildQuote prices a selection without persisting anything.
func BuildQuote(svc builds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		var payload buildSelectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), customerID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// BuildCheckout persists the bill and applies loyalty in one transaction.
func BuildCheckout(svc builds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		var payload buildCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		bill, err := svc.Checkout(r.Context(), customerID, builds.CheckoutInput{
			QuoteInput:    payload.toInput(),
			PaymentMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, bill)
	}
}
