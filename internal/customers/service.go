package customers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

// ServiceParams groups dependencies for the customer service.
type ServiceParams struct {
	CustomerRepo *Repository
}

// Service exposes profile management for registered customers.
type Service interface {
	GetProfile(ctx context.Context, customerID uuid.UUID) (CustomerDTO, error)
	UpdateProfile(ctx context.Context, customerID uuid.UUID, input UpdateProfileInput) (CustomerDTO, error)
}

type service struct {
	customerRepo *Repository
}

// NewService builds a customer service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer repo is required")
	}
	return &service{customerRepo: params.CustomerRepo}, nil
}

func (s *service) GetProfile(ctx context.Context, customerID uuid.UUID) (CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, customerID)
	if err != nil {
		return CustomerDTO{}, err
	}
	return ToDTO(customer), nil
}

func (s *service) UpdateProfile(ctx context.Context, customerID uuid.UUID, input UpdateProfileInput) (CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, customerID)
	if err != nil {
		return CustomerDTO{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Name == "" {
		return CustomerDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Phone == "" {
		return CustomerDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	if err := s.customerRepo.UpdateProfile(ctx, customerID, input); err != nil {
		return CustomerDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}

	customer.Name = input.Name
	customer.Phone = input.Phone
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.City != nil {
		customer.City = *input.City
	}
	if input.State != nil {
		customer.State = *input.State
	}
	if input.Pincode != nil {
		customer.Pincode = *input.Pincode
	}
	return ToDTO(customer), nil
}

func (s *service) loadCustomer(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}
