package customers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepositoryFindByEmailIsCaseInsensitive(t *testing.T) {
	conn := setupCustomersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateTestCustomer(t, conn)

	found, err := repo.FindByEmail(ctx, "  "+created.Email+"  ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryUpdateProfile(t *testing.T) {
	conn := setupCustomersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateTestCustomer(t, conn)
	city := "Pune"
	require.NoError(t, repo.UpdateProfile(ctx, created.ID, UpdateProfileInput{
		Name:  "New Name",
		Phone: "+919999999999",
		City:  &city,
	}))

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", reloaded.Name)
	assert.Equal(t, "+919999999999", reloaded.Phone)
	assert.Equal(t, "Pune", reloaded.City)
}

func TestApplyCheckoutIncrementsCounters(t *testing.T) {
	conn := setupCustomersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateTestCustomer(t, conn)

	firstVisit := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	secondVisit := firstVisit.Add(48 * time.Hour)
	require.NoError(t, ApplyCheckout(conn, created.ID, decimal.NewFromInt(3186), 31, firstVisit))
	require.NoError(t, ApplyCheckout(conn, created.ID, decimal.NewFromInt(814), 8, secondVisit))

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.VisitCount)
	assert.Equal(t, 39, reloaded.LoyaltyPoints)
	assert.True(t, reloaded.TotalSpent.Equal(decimal.NewFromInt(4000)), "total spent = %s", reloaded.TotalSpent)
	require.NotNil(t, reloaded.LastVisitAt)
	assert.True(t, reloaded.LastVisitAt.Equal(secondVisit), "last visit = %s", reloaded.LastVisitAt)
}
