package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/cars"
	"github.com/garagelab/modstudio-backend/internal/customers"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

// ServiceParams groups dependencies for the history service.
type ServiceParams struct {
	BillRepo     *Repository
	CustomerRepo *customers.Repository
	CarRepo      *cars.Repository
}

// Service exposes a customer's finalized bill history.
type Service interface {
	List(ctx context.Context, customerID uuid.UUID, cursor string, limit int) (BillPageDTO, error)
	Get(ctx context.Context, customerID, billID uuid.UUID) (BillDetailDTO, error)
	RenderText(ctx context.Context, customerID, billID uuid.UUID) (string, error)
	Profile(ctx context.Context, customerID uuid.UUID) (PurchaseProfile, error)
}

type service struct {
	billRepo     *Repository
	customerRepo *customers.Repository
	carRepo      *cars.Repository
}

// NewService builds a history service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.BillRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bill repo is required")
	}
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer repo is required")
	}
	if params.CarRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "car repo is required")
	}
	return &service{
		billRepo:     params.BillRepo,
		customerRepo: params.CustomerRepo,
		carRepo:      params.CarRepo,
	}, nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID, cursor string, limit int) (BillPageDTO, error) {
	if customerID == uuid.Nil {
		return BillPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	bills, nextCursor, err := s.billRepo.ListByCustomer(ctx, customerID, cursor, limit)
	if err != nil {
		return BillPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bills")
	}

	items := make([]BillSummaryDTO, 0, len(bills))
	for i := range bills {
		bill := &bills[i]
		items = append(items, BillSummaryDTO{
			ID:            bill.ID,
			BillNumber:    bill.BillNumber,
			CarID:         bill.CarID,
			Total:         bill.Total,
			PaymentMethod: bill.PaymentMethod,
			ItemCount:     len(bill.Items),
			CreatedAt:     bill.CreatedAt,
		})
	}
	return BillPageDTO{Items: items, NextCursor: nextCursor}, nil
}

func (s *service) Get(ctx context.Context, customerID, billID uuid.UUID) (BillDetailDTO, error) {
	bill, err := s.loadOwned(ctx, customerID, billID)
	if err != nil {
		return BillDetailDTO{}, err
	}
	return toDetailDTO(bill), nil
}

func (s *service) RenderText(ctx context.Context, customerID, billID uuid.UUID) (string, error) {
	bill, err := s.loadOwned(ctx, customerID, billID)
	if err != nil {
		return "", err
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	carLabel := ""
	if bill.CarID != nil {
		car, err := s.carRepo.FindByID(ctx, *bill.CarID)
		switch {
		case err == nil:
			carLabel = fmt.Sprintf("%s %s", car.Make, car.Model)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// car removed after the purchase, render without it
		default:
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load car")
		}
	}

	return RenderBill(bill, customer, carLabel), nil
}

// Profile aggregates the customer's purchase history into the snapshot that
// feeds scoring and classification.
func (s *service) Profile(ctx context.Context, customerID uuid.UUID) (PurchaseProfile, error) {
	if customerID == uuid.Nil {
		return PurchaseProfile{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	stats, err := s.billRepo.AggregateCategoryStats(ctx, customerID)
	if err != nil {
		return PurchaseProfile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate purchase history")
	}

	profile := PurchaseProfile{
		CategoryFrequency: make(map[enums.ModCategory]int, len(stats)),
		CategoryAvgSpend:  make(map[enums.ModCategory]decimal.Decimal, len(stats)),
		CategorySpend:     make(map[enums.ModCategory]decimal.Decimal, len(stats)),
		TotalSpent:        decimal.Zero,
	}
	for _, stat := range stats {
		profile.CategoryFrequency[stat.Category] = stat.ItemCount
		profile.CategoryAvgSpend[stat.Category] = stat.AvgPrice
		profile.CategorySpend[stat.Category] = stat.TotalSpent
		profile.TotalItems += stat.ItemCount
		profile.TotalSpent = profile.TotalSpent.Add(stat.TotalSpent)
	}
	return profile, nil
}

func (s *service) loadOwned(ctx context.Context, customerID, billID uuid.UUID) (*models.Bill, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if billID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bill id is required")
	}

	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "bill not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bill")
	}
	if bill.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "bill belongs to another customer")
	}
	return bill, nil
}

func toDetailDTO(bill *models.Bill) BillDetailDTO {
	dto := BillDetailDTO{
		ID:              bill.ID,
		BillNumber:      bill.BillNumber,
		CustomerID:      bill.CustomerID,
		CarID:           bill.CarID,
		Subtotal:        bill.Subtotal,
		DiscountPercent: bill.DiscountPercent,
		DiscountAmount:  bill.DiscountAmount,
		GST:             bill.GSTAmount,
		Total:           bill.Total,
		PaymentMethod:   bill.PaymentMethod,
		CreatedAt:       bill.CreatedAt,
	}
	for _, item := range bill.Items {
		dto.Items = append(dto.Items, BillLineDTO{
			ModificationID: item.ModificationID,
			Name:           item.Name,
			Category:       item.Category,
			UnitPrice:      item.UnitPrice,
			RiskScore:      item.RiskScore,
		})
	}
	return dto
}
