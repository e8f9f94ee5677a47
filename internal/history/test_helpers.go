package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

func setupHistoryTestDB(t *testing.T) *gorm.DB {
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

func mustCreateHistoryCustomer(t *testing.T, conn *gorm.DB) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		ID:           uuid.New(),
		Name:         "History Tester",
		Email:        fmt.Sprintf("ms_history_%s@example.com", uuid.NewString()),
		Phone:        "+911234567890",
		PasswordHash: "hash",
	}
	require.NoError(t, conn.Create(customer).Error)
	return customer
}

type billLine struct {
	name     string
	category enums.ModCategory
	price    int64
}

func mustCreateHistoryBill(t *testing.T, conn *gorm.DB, customerID uuid.UUID, carID *uuid.UUID, createdAt time.Time, lines ...billLine) *models.Bill {
	t.Helper()

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(decimal.NewFromInt(line.price))
	}
	gst := subtotal.Mul(decimal.NewFromFloat(0.18))

	bill := &models.Bill{
		ID:            uuid.New(),
		BillNumber:    fmt.Sprintf("BILL-%s-%s", createdAt.Format("20060102"), uuid.NewString()[:6]),
		CustomerID:    customerID,
		CarID:         carID,
		Subtotal:      subtotal,
		GSTAmount:     gst,
		Total:         subtotal.Add(gst),
		PaymentMethod: enums.PaymentMethodCash,
		CreatedAt:     createdAt,
	}
	for _, line := range lines {
		modID := uuid.New()
		bill.Items = append(bill.Items, models.BillItem{
			ID:             uuid.New(),
			BillID:         bill.ID,
			ModificationID: &modID,
			Name:           line.name,
			Category:       line.category,
			UnitPrice:      decimal.NewFromInt(line.price),
			RiskScore:      5.0,
		})
	}
	require.NoError(t, conn.Create(bill).Error)
	return bill
}
