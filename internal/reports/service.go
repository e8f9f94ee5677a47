package reports

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/internal/history"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

const (
	spendingMonths   = 6
	recentBillsLimit = 5
)

// ServiceParams groups dependencies for the reports service.
type ServiceParams struct {
	ReportRepo  *Repository
	HistoryRepo *history.Repository
	Now         func() time.Time
}

// Service produces customer spending reports and the admin dashboard.
type Service interface {
	Spending(ctx context.Context, customerID uuid.UUID) (SpendingReportDTO, error)
	Categories(ctx context.Context, customerID uuid.UUID) (CategoryReportDTO, error)
	Dashboard(ctx context.Context) (DashboardDTO, error)
}

type service struct {
	reportRepo  *Repository
	historyRepo *history.Repository
	now         func() time.Time
}

// NewService builds a reports service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ReportRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report repo is required")
	}
	if params.HistoryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "history repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		reportRepo:  params.ReportRepo,
		historyRepo: params.HistoryRepo,
		now:         now,
	}, nil
}

// Spending buckets the customer's last six months of bills by calendar month.
func (s *service) Spending(ctx context.Context, customerID uuid.UUID) (SpendingReportDTO, error) {
	if customerID == uuid.Nil {
		return SpendingReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	since := s.now().UTC().AddDate(0, -spendingMonths, 0)
	rows, err := s.reportRepo.ListBillTotalsSince(ctx, customerID, since)
	if err != nil {
		return SpendingReportDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bill totals")
	}

	buckets := map[string]*MonthlySpendDTO{}
	for _, row := range rows {
		month := row.CreatedAt.UTC().Format("2006-01")
		bucket, ok := buckets[month]
		if !ok {
			bucket = &MonthlySpendDTO{Month: month, TotalSpent: decimal.Zero}
			buckets[month] = bucket
		}
		bucket.Bills++
		bucket.TotalSpent = bucket.TotalSpent.Add(row.Total)
	}

	report := SpendingReportDTO{TotalSpent: decimal.Zero, AverageMonthly: decimal.Zero}
	for _, bucket := range buckets {
		bucket.AvgBill = bucket.TotalSpent.Div(decimal.NewFromInt(int64(bucket.Bills))).Round(2)
		report.Months = append(report.Months, *bucket)
		report.TotalSpent = report.TotalSpent.Add(bucket.TotalSpent)
	}
	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Month < report.Months[j].Month
	})

	if len(report.Months) > 0 {
		report.AverageMonthly = report.TotalSpent.
			Div(decimal.NewFromInt(int64(len(report.Months)))).
			Round(2)
		highest := report.Months[0]
		for _, month := range report.Months[1:] {
			if month.TotalSpent.GreaterThan(highest.TotalSpent) {
				highest = month
			}
		}
		report.HighestMonth = highest.Month
	}
	return report, nil
}

// Categories breaks the customer's full purchase history down by category.
func (s *service) Categories(ctx context.Context, customerID uuid.UUID) (CategoryReportDTO, error) {
	if customerID == uuid.Nil {
		return CategoryReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	stats, err := s.historyRepo.AggregateCategoryStats(ctx, customerID)
	if err != nil {
		return CategoryReportDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate categories")
	}

	report := CategoryReportDTO{TotalSpent: decimal.Zero, AveragePerMod: decimal.Zero}
	for _, stat := range stats {
		report.Categories = append(report.Categories, CategoryRowDTO{
			Category:   stat.Category,
			ModCount:   stat.ItemCount,
			TotalSpent: stat.TotalSpent,
			AvgPrice:   stat.AvgPrice,
		})
		report.TotalMods += stat.ItemCount
		report.TotalSpent = report.TotalSpent.Add(stat.TotalSpent)
	}
	if report.TotalMods > 0 {
		report.AveragePerMod = report.TotalSpent.
			Div(decimal.NewFromInt(int64(report.TotalMods))).
			Round(2)
	}
	return report, nil
}

// Dashboard gathers the studio-wide counters for the admin view.
func (s *service) Dashboard(ctx context.Context) (DashboardDTO, error) {
	dashboard := DashboardDTO{}

	var err error
	if dashboard.Customers, err = s.reportRepo.CountCustomers(ctx); err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customers")
	}
	if dashboard.Bills, err = s.reportRepo.CountBills(ctx); err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count bills")
	}
	if dashboard.Revenue, err = s.reportRepo.SumRevenue(ctx); err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	if dashboard.ActiveModifications, err = s.reportRepo.CountActiveModifications(ctx); err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count modifications")
	}
	if dashboard.ScheduledAppointments, err = s.reportRepo.CountScheduledAppointments(ctx); err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count appointments")
	}

	recent, err := s.reportRepo.ListRecentBills(ctx, recentBillsLimit)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent bills")
	}
	for i := range recent {
		dashboard.RecentBills = append(dashboard.RecentBills, RecentBillDTO{
			ID:         recent[i].ID,
			BillNumber: recent[i].BillNumber,
			CustomerID: recent[i].CustomerID,
			Total:      recent[i].Total,
			CreatedAt:  recent[i].CreatedAt,
		})
	}
	return dashboard, nil
}
