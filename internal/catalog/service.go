package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/pkg/db"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	CatalogRepo *Repository
}

// Service exposes catalog browsing plus the admin editing surface.
type Service interface {
	List(ctx context.Context, filter ListFilter) (ModificationPageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (ModificationDTO, error)
	Create(ctx context.Context, input UpsertModificationInput) (ModificationDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertModificationInput) (ModificationDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	catalogRepo *Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{catalogRepo: params.CatalogRepo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (ModificationPageDTO, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return ModificationPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	page, err := s.catalogRepo.List(ctx, filter)
	if err != nil {
		return ModificationPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog")
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ModificationDTO, error) {
	mod, err := s.load(ctx, id)
	if err != nil {
		return ModificationDTO{}, err
	}
	return toDTO(mod), nil
}

func (s *service) Create(ctx context.Context, input UpsertModificationInput) (ModificationDTO, error) {
	if err := validateUpsert(&input); err != nil {
		return ModificationDTO{}, err
	}

	mod := &models.Modification{
		ID:          uuid.New(),
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.catalogRepo.Create(ctx, mod); err != nil {
		if db.IsUniqueViolation(err, "") {
			return ModificationDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "modification name already exists")
		}
		return ModificationDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create modification")
	}
	return toDTO(mod), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertModificationInput) (ModificationDTO, error) {
	mod, err := s.load(ctx, id)
	if err != nil {
		return ModificationDTO{}, err
	}
	if err := validateUpsert(&input); err != nil {
		return ModificationDTO{}, err
	}

	mod.Name = input.Name
	mod.Category = input.Category
	mod.Price = input.Price
	mod.Description = input.Description
	if err := s.catalogRepo.Update(ctx, mod); err != nil {
		if db.IsUniqueViolation(err, "") {
			return ModificationDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "modification name already exists")
		}
		return ModificationDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update modification")
	}
	return toDTO(mod), nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.catalogRepo.SetActive(ctx, id, false); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate modification")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Modification, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "modification id is required")
	}
	mod, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "modification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load modification")
	}
	return mod, nil
}

func validateUpsert(input *UpsertModificationInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	if input.Price.IsNegative() || input.Price.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	return nil
}
