package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/api/responses"
	"github.com/garagelab/modstudio-backend/api/validators"
	"github.com/garagelab/modstudio-backend/internal/catalog"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
	"github.com/garagelab/modstudio-backend/pkg/logger"
)

const (
	catalogDefaultLimit = 20
	catalogMaxLimit     = 100
)

// CatalogList returns active catalog entries, optionally filtered by category.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseCatalogFilter(r, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// CatalogGet returns one catalog entry by id.
func CatalogGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "modificationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mod, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, mod)
	}
}

// AdminCatalogList includes deactivated entries for back-office review.
func AdminCatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseCatalogFilter(r, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

type catalogUpsertRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Category    string `json:"category" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description,omitempty"`
}

func (req catalogUpsertRequest) toInput() (catalog.UpsertModificationInput, error) {
	category, err := enums.ParseModCategory(req.Category)
	if err != nil {
		return catalog.UpsertModificationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return catalog.UpsertModificationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	return catalog.UpsertModificationInput{
		Name:        req.Name,
		Category:    category,
		Price:       price,
		Description: req.Description,
	}, nil
}

// AdminCatalogCreate adds a new modification to the catalog.
func AdminCatalogCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload catalogUpsertRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mod, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, mod)
	}
}

// AdminCatalogUpdate replaces the editable fields of a catalog entry.
func AdminCatalogUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "modificationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload catalogUpsertRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mod, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, mod)
	}
}

// AdminCatalogDeactivate retires a catalog entry without deleting history.
func AdminCatalogDeactivate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "modificationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

func parseCatalogFilter(r *http.Request, includeInactive bool) (catalog.ListFilter, error) {
	limit, err := validators.ParseQueryInt(r, "limit", catalogDefaultLimit, 1, catalogMaxLimit)
	if err != nil {
		return catalog.ListFilter{}, err
	}

	filter := catalog.ListFilter{
		Cursor:          strings.TrimSpace(r.URL.Query().Get("cursor")),
		Limit:           limit,
		IncludeInactive: includeInactive,
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := enums.ParseModCategory(raw)
		if err != nil {
			return catalog.ListFilter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filter.Category = &category
	}

	return filter, nil
}
