package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/San7122/shopsmart-pro-sub001/internal/cache"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

const topDebtorLimit = 5

type AnalyticsService struct {
	CustomerRepo    *repositories.CustomerRepository
	ProductRepo     *repositories.ProductRepository
	ScheduleRepo    *repositories.PaymentScheduleRepository
	TransactionRepo *repositories.TransactionRepository
	Now             func() time.Time
}

func NewAnalyticsService(
	customerRepo *repositories.CustomerRepository,
	productRepo *repositories.ProductRepository,
	scheduleRepo *repositories.PaymentScheduleRepository,
	transactionRepo *repositories.TransactionRepository,
	now func() time.Time,
) *AnalyticsService {
	return &AnalyticsService{
		CustomerRepo:    customerRepo,
		ProductRepo:     productRepo,
		ScheduleRepo:    scheduleRepo,
		TransactionRepo: transactionRepo,
		Now:             now,
	}
}

// GetDashboard assembles the owner dashboard, serving from Redis when fresh
func (s *AnalyticsService) GetDashboard(ctx context.Context, userID int) (*models.Dashboard, error) {
	if data, ok := cache.GetCachedDashboard(ctx, userID); ok {
		var d models.Dashboard
		if err := json.Unmarshal(data, &d); err == nil {
			return &d, nil
		}
	}

	d := &models.Dashboard{GeneratedAt: s.Now()}

	var err error
	d.CustomerCount, d.TotalOutstanding, err = s.CustomerRepo.CountAndOutstanding(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.ProductCount, d.LowStockCount, d.ExpiringCount, err = s.ProductRepo.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.OverdueScheduleCount, d.OverdueOutstanding, err = s.ScheduleRepo.OverdueStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.TodayCredit, d.TodayPayments, d.TodayTransactions, err = s.TransactionRepo.DailyTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.MonthCredit, d.MonthPayments, err = s.TransactionRepo.MonthlyTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	debtors, err := s.CustomerRepo.TopDebtors(ctx, userID, topDebtorLimit)
	if err != nil {
		return nil, err
	}
	for _, c := range debtors {
		d.TopDebtors = append(d.TopDebtors, models.NewCustomerSummary(c))
	}

	if data, err := json.Marshal(d); err == nil {
		cache.CacheDashboard(ctx, userID, data)
	}

	return d, nil
}
