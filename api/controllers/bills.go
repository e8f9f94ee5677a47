package controllers

import (
	"net/http"
	"strings"

	"github.com/garagelab/modstudio-backend/api/responses"
	"github.com/garagelab/modstudio-backend/api/validators"
	"github.com/garagelab/modstudio-backend/internal/history"
	"github.com/garagelab/modstudio-backend/pkg/logger"
)

const (
	billsDefaultLimit = 20
	billsMaxLimit     = 100
)

// BillList returns the customer's purchase history, newest first.
func BillList(svc history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", billsDefaultLimit, 1, billsMaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		page, err := svc.List(r.Context(), customerID, cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// BillDetail returns one bill with its line items.
func BillDetail(svc history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		billID, err := pathUUID(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bill, err := svc.Get(r.Context(), customerID, billID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, bill)
	}
}

// BillText renders the printable receipt for one bill.
func BillText(svc history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, logg)
		if !ok {
			return
		}

		billID, err := pathUUID(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		text, err := svc.RenderText(r.Context(), customerID, billID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteText(w, text)
	}
}
