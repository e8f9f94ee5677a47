package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/pkg/enums"
)

// MonthlySpendDTO is one month's aggregated purchases for a customer.
type MonthlySpendDTO struct {
	Month      string          `json:"month"`
	Bills      int             `json:"bills"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	AvgBill    decimal.Decimal `json:"avg_bill"`
}

// SpendingReportDTO covers the customer's last six months.
type SpendingReportDTO struct {
	Months         []MonthlySpendDTO `json:"months"`
	TotalSpent     decimal.Decimal   `json:"total_spent"`
	AverageMonthly decimal.Decimal   `json:"average_monthly"`
	HighestMonth   string            `json:"highest_month,omitempty"`
}

// CategoryRowDTO is the aggregated spend in one modification category.
type CategoryRowDTO struct {
	Category   enums.ModCategory `json:"category"`
	ModCount   int               `json:"mod_count"`
	TotalSpent decimal.Decimal   `json:"total_spent"`
	AvgPrice   decimal.Decimal   `json:"avg_price"`
}

// CategoryReportDTO is the per-category breakdown of everything the customer
// has ever bought.
type CategoryReportDTO struct {
	Categories    []CategoryRowDTO `json:"categories"`
	TotalMods     int              `json:"total_mods"`
	TotalSpent    decimal.Decimal  `json:"total_spent"`
	AveragePerMod decimal.Decimal  `json:"average_per_mod"`
}

// RecentBillDTO is one row in the dashboard's latest-bills list.
type RecentBillDTO struct {
	ID         uuid.UUID       `json:"id"`
	BillNumber string          `json:"bill_number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// DashboardDTO is the studio-wide snapshot served to admins.
type DashboardDTO struct {
	Customers             int64           `json:"customers"`
	Bills                 int64           `json:"bills"`
	Revenue               decimal.Decimal `json:"revenue"`
	ActiveModifications   int64           `json:"active_modifications"`
	ScheduledAppointments int64           `json:"scheduled_appointments"`
	RecentBills           []RecentBillDTO `json:"recent_bills"`
}
