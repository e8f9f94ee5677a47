package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/api/responses"
	"github.com/garagelab/modstudio-backend/api/validators"
	"github.com/garagelab/modstudio-backend/internal/insights"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
	"github.com/garagelab/modstudio-backend/pkg/logger"
)

const recommendationsMaxLimit = 20

// InsightRecommendations returns the ranked shortlist for the customer.
func InsightRecommendations(svc insights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, recommendationsMaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := insights.RecommendationsInput{Limit: limit}
		if raw := strings.TrimSpace(r.URL.Query().Get("car_id")); raw != "" {
			carID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid car id"))
				return
			}
			input.CarID = carID
		}

		recs, err := svc.Recommendations(r.Context(), customerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, recs)
	}
}

type riskAssessRequest struct {
	CarID           uuid.UUID   `json:"car_id,omitempty"`
	ModificationIDs []uuid.UUID `json:"modification_ids" validate:"required,min=1"`
}

// InsightRisk scores a selection of modifications against a car.
func InsightRisk(svc insights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		var payload riskAssessRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.AssessRisk(r.Context(), customerID, insights.RiskInput{
			CarID:           payload.CarID,
			ModificationIDs: payload.ModificationIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

// InsightSegment classifies the customer into a spending archetype.
func InsightSegment(svc insights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		segment, err := svc.Segment(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, segment)
	}
}
