package builds

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

func setupBuildsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  pincode TEXT NOT NULL DEFAULT '',
  visit_count INTEGER NOT NULL DEFAULT 0,
  total_spent NUMERIC NOT NULL DEFAULT 0,
  loyalty_points INTEGER NOT NULL DEFAULT 0,
  is_admin INTEGER NOT NULL DEFAULT 0,
  last_visit_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS cars (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  make TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER,
  color TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS modifications (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS bills (
  id TEXT PRIMARY KEY,
  bill_number TEXT NOT NULL,
  customer_id TEXT NOT NULL,
  car_id TEXT,
  subtotal NUMERIC NOT NULL,
  discount_percent INTEGER NOT NULL DEFAULT 0,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  gst_amount NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  created_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_bills_bill_number ON bills (bill_number);
CREATE TABLE IF NOT EXISTS bill_items (
  id TEXT PRIMARY KEY,
  bill_id TEXT NOT NULL,
  modification_id TEXT,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  risk_score NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

// sqliteTxRunner satisfies TxRunner on top of the in-memory test connection.
type sqliteTxRunner struct {
	conn *gorm.DB
}

func (r sqliteTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.conn.WithContext(ctx).Transaction(fn)
}

func mustCreateBuildCustomer(t *testing.T, conn *gorm.DB, visitCount int) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		ID:           uuid.New(),
		Name:         "Build Tester",
		Email:        fmt.Sprintf("ms_build_%s@example.com", uuid.NewString()),
		Phone:        "+911234567890",
		PasswordHash: "hash",
		VisitCount:   visitCount,
	}
	require.NoError(t, conn.Create(customer).Error)
	return customer
}

func mustCreateBuildCar(t *testing.T, conn *gorm.DB, customerID uuid.UUID, year *int) *models.Car {
	t.Helper()
	car := &models.Car{
		ID:         uuid.New(),
		CustomerID: customerID,
		Make:       "Honda",
		Model:      "City",
		Year:       year,
	}
	require.NoError(t, conn.Create(car).Error)
	return car
}

func mustCreateBuildMod(t *testing.T, conn *gorm.DB, name string, category enums.ModCategory, price int64) *models.Modification {
	t.Helper()
	mod := &models.Modification{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    decimal.NewFromInt(price),
		IsActive: true,
	}
	require.NoError(t, conn.Create(mod).Error)
	return mod
}
