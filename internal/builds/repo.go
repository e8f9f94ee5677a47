package builds

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/pkg/db/models"
)

// NextBillNumber formats a human-readable bill identifier. Uniqueness is
// enforced by the index on bills.bill_number; the random suffix makes
// collisions across concurrent checkouts vanishingly rare.
func NextBillNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("BILL-%s-%s", now.Format("20060102"), suffix)
}

// CreateBill writes the bill and its items inside the caller's transaction.
func CreateBill(tx *gorm.DB, bill *models.Bill) error {
	return tx.Create(bill).Error
}
