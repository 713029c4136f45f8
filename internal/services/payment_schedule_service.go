package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/San7122/shopsmart-pro-sub001/internal/cache"
	"github.com/San7122/shopsmart-pro-sub001/internal/metrics"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

type PaymentScheduleService struct {
	Repo         *repositories.PaymentScheduleRepository
	CustomerRepo *repositories.CustomerRepository
	Now          func() time.Time
}

func NewPaymentScheduleService(repo *repositories.PaymentScheduleRepository, customerRepo *repositories.CustomerRepository, now func() time.Time) *PaymentScheduleService {
	return &PaymentScheduleService{Repo: repo, CustomerRepo: customerRepo, Now: now}
}

// buildInstallments splits the total into n equal parts, putting the rounding
// remainder on the last one so the parts always sum to the total.
func buildInstallments(total float64, n int, firstDue time.Time, frequency string) []models.Installment {
	per := math.Floor(total/float64(n)*100) / 100
	installments := make([]models.Installment, n)
	due := firstDue
	var assigned float64
	for i := 0; i < n; i++ {
		amount := per
		if i == n-1 {
			amount = math.Round((total-assigned)*100) / 100
		}
		assigned += amount
		installments[i] = models.Installment{
			Number:  i + 1,
			Amount:  amount,
			DueDate: due,
			Status:  models.ScheduleStatusPending,
		}
		switch frequency {
		case "weekly":
			due = due.AddDate(0, 0, 7)
		case "biweekly":
			due = due.AddDate(0, 0, 14)
		default: // monthly
			due = due.AddDate(0, 1, 0)
		}
	}
	return installments
}

func (s *PaymentScheduleService) CreateSchedule(ctx context.Context, userID int, req *models.CreatePaymentScheduleRequest) (*models.PaymentSchedule, error) {
	if req.TotalAmount <= 0 {
		return nil, models.ErrNonPositiveAmount
	}
	if req.DueDate.IsZero() {
		return nil, errors.New("due date is required")
	}
	if req.ScheduleType == models.ScheduleTypeInstallment && req.NumberOfInstallments < 2 {
		return nil, errors.New("installment schedules need at least 2 installments")
	}
	if req.LateFeeEnabled && req.LateFeeValue <= 0 {
		return nil, errors.New("late fee value must be positive when enabled")
	}

	if _, err := s.CustomerRepo.Get(ctx, userID, req.CustomerID); err != nil {
		return nil, err
	}

	scheduleType := req.ScheduleType
	if scheduleType == "" {
		scheduleType = models.ScheduleTypeOneTime
	}
	reminderDays := req.ReminderDays
	if len(reminderDays) == 0 {
		reminderDays = models.DefaultReminderDays
	}
	overdueDays := req.OverdueReminderDays
	if overdueDays <= 0 {
		overdueDays = 3
	}
	channel := req.ReminderChannel
	if channel == "" {
		channel = models.ReminderChannelWhatsApp
	}

	schedule := &models.PaymentSchedule{
		UserID:               userID,
		CustomerID:           req.CustomerID,
		TransactionID:        req.TransactionID,
		InvoiceNumber:        req.InvoiceNumber,
		TotalAmount:          req.TotalAmount,
		ScheduleType:         scheduleType,
		DueDate:              req.DueDate,
		NumberOfInstallments: req.NumberOfInstallments,
		InstallmentFrequency: req.InstallmentFrequency,
		ReminderEnabled:      req.ReminderEnabled,
		ReminderDays:         reminderDays,
		OverdueReminderDays:  overdueDays,
		ReminderChannel:      channel,
		LateFeeEnabled:       req.LateFeeEnabled,
		LateFeeType:          req.LateFeeType,
		LateFeeValue:         req.LateFeeValue,
	}

	if scheduleType == models.ScheduleTypeInstallment {
		schedule.Installments = buildInstallments(req.TotalAmount, req.NumberOfInstallments, req.DueDate, req.InstallmentFrequency)
		// The schedule is due when its last installment is
		schedule.DueDate = schedule.Installments[len(schedule.Installments)-1].DueDate
	}

	schedule.Derive(s.Now())

	if err := s.Repo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *PaymentScheduleService) GetSchedule(ctx context.Context, userID, id int) (*models.PaymentSchedule, error) {
	return s.Repo.Get(ctx, userID, id)
}

func (s *PaymentScheduleService) ListSchedules(ctx context.Context, userID int) ([]*models.PaymentSchedule, error) {
	return s.Repo.List(ctx, userID)
}

func (s *PaymentScheduleService) ListByCustomer(ctx context.Context, userID, customerID int) ([]*models.PaymentSchedule, error) {
	return s.Repo.ListByCustomer(ctx, userID, customerID)
}

// RecordPayment applies a payment to a schedule, optionally against a
// specific installment, and persists the re-derived state.
func (s *PaymentScheduleService) RecordPayment(ctx context.Context, userID, id int, req *models.RecordPaymentRequest) (*models.PaymentSchedule, error) {
	schedule, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := schedule.RecordPayment(req.Amount, req.InstallmentIndex, s.Now()); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()
	cache.InvalidateDashboard(ctx, userID)
	return schedule, nil
}

// ApplyLateFee adds the configured late fee to an overdue schedule
func (s *PaymentScheduleService) ApplyLateFee(ctx context.Context, userID, id int) (*models.PaymentSchedule, float64, error) {
	schedule, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, 0, err
	}

	fee := schedule.ApplyLateFee(s.Now())
	if fee == 0 {
		return schedule, 0, nil
	}

	if err := s.Repo.Update(ctx, schedule); err != nil {
		return nil, 0, err
	}

	metrics.LateFeesApplied.Inc()
	return schedule, fee, nil
}

// PromiseToPay records a customer's promised date and amount on the schedule
func (s *PaymentScheduleService) PromiseToPay(ctx context.Context, userID, id int, req *models.PromiseToPayRequest) (*models.PaymentSchedule, error) {
	if req.PromisedDate.IsZero() {
		return nil, errors.New("promised date is required")
	}
	if req.PromisedAmount < 0 {
		return nil, models.ErrNegativeAmount
	}

	schedule, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if schedule.Status == models.ScheduleStatusCancelled {
		return nil, models.ErrScheduleCancelled
	}

	promised := req.PromisedDate
	schedule.PromisedDate = &promised
	schedule.PromisedAmount = req.PromisedAmount
	schedule.PromiseNotes = req.Notes

	if err := s.Repo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *PaymentScheduleService) CancelSchedule(ctx context.Context, userID, id int) (*models.PaymentSchedule, error) {
	schedule, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	schedule.Cancel()

	if err := s.Repo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *PaymentScheduleService) GetUpcoming(ctx context.Context, userID, days int) ([]*models.PaymentSchedule, error) {
	if days <= 0 {
		days = 7
	}
	return s.Repo.GetUpcoming(ctx, userID, days)
}

func (s *PaymentScheduleService) GetOverdue(ctx context.Context, userID int) ([]*models.PaymentSchedule, error) {
	return s.Repo.GetOverdue(ctx, userID)
}

func (s *PaymentScheduleService) GetDueToday(ctx context.Context, userID int) ([]*models.PaymentSchedule, error) {
	return s.Repo.GetDueToday(ctx, userID)
}

// RefreshStatuses re-derives open schedules against the current time and
// persists the ones that flipped, normally pending schedules turning overdue
// as their due date passes.
func (s *PaymentScheduleService) RefreshStatuses(ctx context.Context, userID int) (int, error) {
	schedules, err := s.Repo.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.Now()
	changed := 0
	for _, sc := range schedules {
		prev := sc.Status
		sc.Derive(now)
		if sc.Status == prev {
			continue
		}
		if err := s.Repo.Update(ctx, sc); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}
