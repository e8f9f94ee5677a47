package builds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/cars"
	"github.com/garagelab/modstudio-backend/internal/catalog"
	"github.com/garagelab/modstudio-backend/internal/customers"
	"github.com/garagelab/modstudio-backend/internal/history"
	"github.com/garagelab/modstudio-backend/internal/pricing"
	"github.com/garagelab/modstudio-backend/internal/risk"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
	"github.com/garagelab/modstudio-backend/pkg/logger"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the builds service.
type ServiceParams struct {
	CustomerRepo *customers.Repository
	CarRepo      *cars.Repository
	CatalogRepo  *catalog.Repository
	Tx           TxRunner
	Logger       *logger.Logger
	Now          func() time.Time
}

// Service prices build selections and finalizes them into bills.
type Service interface {
	Quote(ctx context.Context, customerID uuid.UUID, input QuoteInput) (QuoteDTO, error)
	Checkout(ctx context.Context, customerID uuid.UUID, input CheckoutInput) (BillDTO, error)
}

type service struct {
	customerRepo *customers.Repository
	carRepo      *cars.Repository
	catalogRepo  *catalog.Repository
	tx           TxRunner
	log          *logger.Logger
	now          func() time.Time
}

// NewService builds a builds service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer repo is required")
	}
	if params.CarRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "car repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		customerRepo: params.CustomerRepo,
		carRepo:      params.CarRepo,
		catalogRepo:  params.CatalogRepo,
		tx:           params.Tx,
		log:          params.Logger,
		now:          now,
	}, nil
}

// selection is everything resolved and validated from a quote input.
type selection struct {
	customer *models.Customer
	car      *models.Car
	items    []pricing.LineItem
	colorAdd *pricing.LineItem
}

// Quote prices the selection without touching any state.
func (s *service) Quote(ctx context.Context, customerID uuid.UUID, input QuoteInput) (QuoteDTO, error) {
	sel, err := s.resolveSelection(ctx, customerID, input)
	if err != nil {
		return QuoteDTO{}, err
	}
	return s.buildQuote(sel), nil
}

// Checkout re-prices the selection and writes the bill, item snapshots and
// loyalty counter updates in one transaction.
func (s *service) Checkout(ctx context.Context, customerID uuid.UUID, input CheckoutInput) (BillDTO, error) {
	if !input.PaymentMethod.IsValid() {
		return BillDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	sel, err := s.resolveSelection(ctx, customerID, input.QuoteInput)
	if err != nil {
		return BillDTO{}, err
	}
	quote := s.buildQuote(sel)
	now := s.now().UTC()

	var carID *uuid.UUID
	if sel.car != nil {
		id := sel.car.ID
		carID = &id
	}

	bill := &models.Bill{
		ID:              uuid.New(),
		BillNumber:      NextBillNumber(now),
		CustomerID:      sel.customer.ID,
		CarID:           carID,
		Subtotal:        quote.Subtotal,
		DiscountPercent: quote.DiscountPercent,
		DiscountAmount:  quote.DiscountAmount,
		GSTAmount:       quote.GST,
		Total:           quote.Total,
		PaymentMethod:   input.PaymentMethod,
	}
	for _, item := range quote.Items {
		modID := item.ModificationID
		bill.Items = append(bill.Items, models.BillItem{
			ID:             uuid.New(),
			BillID:         bill.ID,
			ModificationID: &modID,
			Name:           item.Name,
			Category:       item.Category,
			UnitPrice:      item.Price,
			RiskScore:      item.Risk.Score,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := CreateBill(tx, bill); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bill")
		}
		return customers.ApplyCheckout(tx, sel.customer.ID, quote.Total, quote.LoyaltyPointsEarned, now)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return BillDTO{}, typed
		}
		return BillDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize checkout")
	}

	if s.log != nil {
		logCtx := s.log.WithCustomerID(ctx, sel.customer.ID.String())
		logCtx = s.log.WithBillNumber(logCtx, bill.BillNumber)
		s.log.Info(logCtx, "checkout completed")
	}

	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	carLabel := ""
	if sel.car != nil {
		carLabel = fmt.Sprintf("%s %s", sel.car.Make, sel.car.Model)
	}

	dto := toBillDTO(bill)
	dto.LoyaltyEarned = quote.LoyaltyPointsEarned
	dto.Text = history.RenderBill(bill, sel.customer, carLabel)
	return dto, nil
}

func (s *service) buildQuote(sel *selection) QuoteDTO {
	now := s.now().UTC()
	visits := sel.customer.VisitCount

	result := pricing.ComputeTotals(sel.items, sel.colorAdd, &visits, now)

	carSnapshot := risk.CarSnapshot{}
	if sel.car != nil {
		carSnapshot = risk.CarSnapshot{Make: sel.car.Make, Year: sel.car.Year}
	}

	allItems := sel.items
	if sel.colorAdd != nil {
		allItems = append(append([]pricing.LineItem{}, sel.items...), *sel.colorAdd)
	}

	items := make([]QuoteItemDTO, 0, len(allItems))
	for _, line := range allItems {
		assessment := risk.Assess(line.Category, line.UnitPrice, carSnapshot, now)
		items = append(items, QuoteItemDTO{
			ModificationID: line.ID,
			Name:           line.Name,
			Category:       line.Category,
			Price:          line.UnitPrice,
			Risk:           assessment,
		})
	}

	return QuoteDTO{
		Items:                 items,
		Subtotal:              result.Subtotal,
		DiscountPercent:       result.DiscountPercent,
		DiscountAmount:        result.DiscountAmount,
		SubtotalAfterDiscount: result.SubtotalAfterDiscount,
		GST:                   result.GST,
		Total:                 result.Total,
		LoyaltyPointsEarned:   int(result.Total.Shift(-2).IntPart()),
	}
}

func (s *service) resolveSelection(ctx context.Context, customerID uuid.UUID, input QuoteInput) (*selection, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if len(input.ModificationIDs) == 0 && input.ColorID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one modification is required")
	}

	seen := map[uuid.UUID]bool{}
	for _, id := range input.ModificationIDs {
		if id == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "modification id is required")
		}
		if seen[id] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate modification in selection")
		}
		seen[id] = true
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	sel := &selection{customer: customer}

	if input.CarID != uuid.Nil {
		car, err := s.carRepo.FindByID(ctx, input.CarID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "car not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load car")
		}
		if car.CustomerID != customerID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "car belongs to another customer")
		}
		sel.car = car
	}

	lookupIDs := append([]uuid.UUID{}, input.ModificationIDs...)
	if input.ColorID != nil {
		lookupIDs = append(lookupIDs, *input.ColorID)
	}
	mods, err := s.catalogRepo.FindActiveByIDs(ctx, lookupIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load modifications")
	}
	byID := make(map[uuid.UUID]*models.Modification, len(mods))
	for i := range mods {
		byID[mods[i].ID] = &mods[i]
	}

	for _, id := range input.ModificationIDs {
		mod, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "modification not found or inactive")
		}
		if mod.Category == enums.ModCategoryColor {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "color changes must be selected as the color option")
		}
		sel.items = append(sel.items, pricing.LineItem{
			ID:        mod.ID,
			Name:      mod.Name,
			UnitPrice: mod.Price,
			Category:  mod.Category,
		})
	}

	if input.ColorID != nil {
		mod, ok := byID[*input.ColorID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "color option not found or inactive")
		}
		if mod.Category != enums.ModCategoryColor {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected color option is not a color change")
		}
		sel.colorAdd = &pricing.LineItem{
			ID:        mod.ID,
			Name:      mod.Name,
			UnitPrice: mod.Price,
			Category:  mod.Category,
		}
	}

	return sel, nil
}

func toBillDTO(bill *models.Bill) BillDTO {
	dto := BillDTO{
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
		dto.Items = append(dto.Items, BillItemDTO{
			ModificationID: item.ModificationID,
			Name:           item.Name,
			Category:       item.Category,
			UnitPrice:      item.UnitPrice,
			RiskScore:      item.RiskScore,
		})
	}
	return dto
}
