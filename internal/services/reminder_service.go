package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
	"github.com/San7122/shopsmart-pro-sub001/internal/timeutil"
	"github.com/San7122/shopsmart-pro-sub001/internal/whatsapp"
)

type ReminderService struct {
	ScheduleRepo *repositories.PaymentScheduleRepository
	CustomerRepo *repositories.CustomerRepository
	UserRepo     *repositories.UserRepository
	Provider     whatsapp.Provider
	Now          func() time.Time
}

func NewReminderService(
	scheduleRepo *repositories.PaymentScheduleRepository,
	customerRepo *repositories.CustomerRepository,
	userRepo *repositories.UserRepository,
	provider whatsapp.Provider,
	now func() time.Time,
) *ReminderService {
	return &ReminderService{
		ScheduleRepo: scheduleRepo,
		CustomerRepo: customerRepo,
		UserRepo:     userRepo,
		Provider:     provider,
		Now:          now,
	}
}

// DueReminder is one reminder the sweep decided to send today
type DueReminder struct {
	ScheduleID   int     `json:"schedule_id"`
	CustomerID   int     `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Phone        string  `json:"phone"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"due_date"`
	DaysUntilDue int     `json:"days_until_due"` // negative when overdue
	Message      string  `json:"message"`
	WhatsAppLink string  `json:"whatsapp_link"`
}

// daysUntilDue counts whole IST days from today to the due date
func (s *ReminderService) daysUntilDue(due time.Time) int {
	today := timeutil.StartOfDay(s.Now())
	dueDay := timeutil.StartOfDay(due)
	return int(dueDay.Sub(today).Hours() / 24)
}

// dueForReminder applies the schedule's reminder settings: before the due
// date, a reminder fires on each configured days-before offset; after it,
// one fires every overdue_reminder_days days.
func (s *ReminderService) dueForReminder(sc *models.PaymentSchedule) (int, bool) {
	days := s.daysUntilDue(sc.DueDate)
	if days >= 0 {
		for _, d := range sc.ReminderDays {
			if days == d {
				return days, true
			}
		}
		return days, false
	}

	cadence := sc.OverdueReminderDays
	if cadence <= 0 {
		cadence = 3
	}
	return days, (-days)%cadence == 0
}

func (s *ReminderService) buildReminder(ctx context.Context, sc *models.PaymentSchedule, days int) (*DueReminder, error) {
	customer, err := s.CustomerRepo.Get(ctx, sc.UserID, sc.CustomerID)
	if err != nil {
		return nil, err
	}
	shopName := ""
	if user, err := s.UserRepo.Get(ctx, sc.UserID); err == nil {
		shopName = user.ShopName
	}

	dueDate := sc.DueDate.In(timeutil.IST).Format(timeutil.DisplayLayout)
	var message string
	switch {
	case days > 0:
		message = fmt.Sprintf("Namaste %s, a payment of Rs %.2f to %s is due on %s. Thank you!",
			customer.Name, sc.RemainingAmount, shopName, dueDate)
	case days == 0:
		message = fmt.Sprintf("Namaste %s, your payment of Rs %.2f to %s is due today. Thank you!",
			customer.Name, sc.RemainingAmount, shopName)
	default:
		message = fmt.Sprintf("Namaste %s, your payment of Rs %.2f to %s was due on %s and is now overdue. Please pay at the earliest.",
			customer.Name, sc.RemainingAmount, shopName, dueDate)
	}

	return &DueReminder{
		ScheduleID:   sc.ID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Phone:        customer.Phone,
		Amount:       sc.RemainingAmount,
		DueDate:      dueDate,
		DaysUntilDue: days,
		Message:      message,
		WhatsAppLink: whatsapp.ClickToChatLink(customer.Phone, message),
	}, nil
}

// ReminderLink builds the reminder message and wa.me link for one schedule
// on demand, whether or not it is due for an automatic reminder today.
func (s *ReminderService) ReminderLink(ctx context.Context, userID, scheduleID int) (*DueReminder, error) {
	sc, err := s.ScheduleRepo.Get(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}
	if sc.Status == models.ScheduleStatusPaid || sc.Status == models.ScheduleStatusCancelled {
		return nil, errors.New("schedule has no outstanding payment")
	}
	return s.buildReminder(ctx, sc, s.daysUntilDue(sc.DueDate))
}

// PendingReminders returns the reminders that should go out today for one shop
func (s *ReminderService) PendingReminders(ctx context.Context, userID int) ([]*DueReminder, error) {
	schedules, err := s.ScheduleRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	reminders := make([]*DueReminder, 0)
	for _, sc := range schedules {
		if !sc.ReminderEnabled || sc.Status == models.ScheduleStatusPaid || sc.Status == models.ScheduleStatusCancelled {
			continue
		}
		days, due := s.dueForReminder(sc)
		if !due {
			continue
		}
		r, err := s.buildReminder(ctx, sc, days)
		if err != nil {
			log.Printf("[Reminder] Skipping schedule %d: %v", sc.ID, err)
			continue
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}

// SweepAndSend walks every open schedule across all shops and sends the
// reminders that are due. Run once a day.
func (s *ReminderService) SweepAndSend(ctx context.Context) (int, error) {
	schedules, err := s.ScheduleRepo.GetOpenForReminders(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, sc := range schedules {
		days, due := s.dueForReminder(sc)
		if !due {
			continue
		}
		r, err := s.buildReminder(ctx, sc, days)
		if err != nil {
			log.Printf("[Reminder] Skipping schedule %d: %v", sc.ID, err)
			continue
		}
		if err := s.Provider.SendMessage(r.Phone, r.Message); err != nil {
			log.Printf("[Reminder] Failed to send for schedule %d: %v", sc.ID, err)
			continue
		}
		sent++
	}
	log.Printf("[Reminder] Sweep complete, %d reminders sent via %s", sent, s.Provider.GetName())
	return sent, nil
}
