package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/cars"
	"github.com/garagelab/modstudio-backend/internal/customers"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

func newHistoryService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		BillRepo:     NewRepository(conn),
		CustomerRepo: customers.NewRepository(conn),
		CarRepo:      cars.NewRepository(conn),
	})
	require.NoError(t, err)
	return svc
}

func TestListPaginatesNewestFirst(t *testing.T) {
	conn := setupHistoryTestDB(t)
	svc := newHistoryService(t, conn)
	ctx := context.Background()

	customer := mustCreateHistoryCustomer(t, conn)
	base := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		mustCreateHistoryBill(t, conn, customer.ID, nil, base.Add(time.Duration(i)*time.Hour),
			billLine{name: "Turbo Kit", category: enums.ModCategoryPerformance, price: 1000})
	}

	firstPage, err := svc.List(ctx, customer.ID, "", 2)
	require.NoError(t, err)
	require.Len(t, firstPage.Items, 2)
	require.NotEmpty(t, firstPage.NextCursor)
	assert.True(t, firstPage.Items[0].CreatedAt.After(firstPage.Items[1].CreatedAt))
	assert.Equal(t, 1, firstPage.Items[0].ItemCount)

	secondPage, err := svc.List(ctx, customer.ID, firstPage.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, secondPage.Items, 1)
	assert.Empty(t, secondPage.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, item := range append(firstPage.Items, secondPage.Items...) {
		require.False(t, seen[item.ID], "bill %s returned twice", item.ID)
		seen[item.ID] = true
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	conn := setupHistoryTestDB(t)
	svc := newHistoryService(t, conn)
	ctx := context.Background()

	owner := mustCreateHistoryCustomer(t, conn)
	stranger := mustCreateHistoryCustomer(t, conn)
	bill := mustCreateHistoryBill(t, conn, owner.ID, nil, time.Now().UTC(),
		billLine{name: "Sport Exhaust", category: enums.ModCategoryPerformance, price: 28000})

	detail, err := svc.Get(ctx, owner.ID, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.BillNumber, detail.BillNumber)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Sport Exhaust", detail.Items[0].Name)

	_, err = svc.Get(ctx, stranger.ID, bill.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = svc.Get(ctx, owner.ID, uuid.New())
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRenderTextProducesReceipt(t *testing.T) {
	conn := setupHistoryTestDB(t)
	svc := newHistoryService(t, conn)
	ctx := context.Background()

	customer := mustCreateHistoryCustomer(t, conn)
	car := &models.Car{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Make:       "Honda",
		Model:      "City",
	}
	require.NoError(t, conn.Create(car).Error)

	carID := car.ID
	bill := mustCreateHistoryBill(t, conn, customer.ID, &carID,
		time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC),
		billLine{name: "Turbo Kit", category: enums.ModCategoryPerformance, price: 1000},
		billLine{name: "Window Tinting", category: enums.ModCategoryAesthetic, price: 8000})

	text, err := svc.RenderText(ctx, customer.ID, bill.ID)
	require.NoError(t, err)

	assert.Contains(t, text, "CUSTOM CAR MODIFICATION STUDIO")
	assert.Contains(t, text, bill.BillNumber)
	assert.Contains(t, text, customer.Name)
	assert.Contains(t, text, "Honda City")
	assert.Contains(t, text, "Turbo Kit")
	assert.Contains(t, text, "TOTAL AMOUNT:")
	assert.Contains(t, text, "Thank you for your business!")
}

func TestProfileAggregatesCategories(t *testing.T) {
	conn := setupHistoryTestDB(t)
	svc := newHistoryService(t, conn)
	ctx := context.Background()

	customer := mustCreateHistoryCustomer(t, conn)
	now := time.Now().UTC()
	mustCreateHistoryBill(t, conn, customer.ID, nil, now.Add(-2*time.Hour),
		billLine{name: "Turbo Kit", category: enums.ModCategoryPerformance, price: 1000},
		billLine{name: "Sport Exhaust", category: enums.ModCategoryPerformance, price: 3000})
	mustCreateHistoryBill(t, conn, customer.ID, nil, now.Add(-time.Hour),
		billLine{name: "Window Tinting", category: enums.ModCategoryAesthetic, price: 8000})

	profile, err := svc.Profile(ctx, customer.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, profile.CategoryFrequency[enums.ModCategoryPerformance])
	assert.Equal(t, 1, profile.CategoryFrequency[enums.ModCategoryAesthetic])
	assert.Equal(t, 3, profile.TotalItems)
	assert.True(t, profile.TotalSpent.Equal(decimal.NewFromInt(12000)), "total %s", profile.TotalSpent)
	assert.True(t, profile.CategoryAvgSpend[enums.ModCategoryPerformance].Equal(decimal.NewFromInt(2000)),
		"avg %s", profile.CategoryAvgSpend[enums.ModCategoryPerformance])
	assert.True(t, profile.CategorySpend[enums.ModCategoryAesthetic].Equal(decimal.NewFromInt(8000)),
		"spend %s", profile.CategorySpend[enums.ModCategoryAesthetic])
}

func TestProfileEmptyHistory(t *testing.T) {
	conn := setupHistoryTestDB(t)
	svc := newHistoryService(t, conn)

	customer := mustCreateHistoryCustomer(t, conn)
	profile, err := svc.Profile(context.Background(), customer.ID)
	require.NoError(t, err)

	assert.Empty(t, profile.CategoryFrequency)
	assert.Equal(t, 0, profile.TotalItems)
	assert.True(t, profile.TotalSpent.IsZero())
}
