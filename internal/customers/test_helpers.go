package customers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
)

func setupCustomersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	customersTable := `
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
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers (lower(email));`

	require.NoError(t, conn.Exec(customersTable).Error)
	return conn
}

func mustCreateTestCustomer(t *testing.T, conn *gorm.DB) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		ID:           uuid.New(),
		Name:         "Repo Tester",
		Email:        fmt.Sprintf("ms_test_%s@example.com", uuid.NewString()),
		Phone:        "+911234567890",
		PasswordHash: "hash",
	}
	require.NoError(t, conn.Create(customer).Error)
	return customer
}
