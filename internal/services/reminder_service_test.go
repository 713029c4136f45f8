package services

import (
	"testing"
	"time"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/timeutil"
)

// 15 June 2026, 10:00 IST
var reminderTestNow = time.Date(2026, time.June, 15, 10, 0, 0, 0, timeutil.IST)

func reminderServiceAt(now time.Time) *ReminderService {
	return &ReminderService{Now: func() time.Time { return now }}
}

func TestDueForReminderUpcomingOffsets(t *testing.T) {
	s := reminderServiceAt(reminderTestNow)
	sc := &models.PaymentSchedule{ReminderDays: []int{3, 1, 0}}

	cases := []struct {
		daysAhead int
		want      bool
	}{
		{5, false},
		{3, true},
		{2, false},
		{1, true},
		{0, true},
	}

	for _, c := range cases {
		sc.DueDate = reminderTestNow.AddDate(0, 0, c.daysAhead)
		days, due := s.dueForReminder(sc)
		if due != c.want {
			t.Errorf("due in %d days: got %v, want %v", c.daysAhead, due, c.want)
		}
		if days != c.daysAhead {
			t.Errorf("due in %d days: counted %d", c.daysAhead, days)
		}
	}
}

func TestDueForReminderOverdueCadence(t *testing.T) {
	s := reminderServiceAt(reminderTestNow)
	sc := &models.PaymentSchedule{
		ReminderDays:        []int{3, 1, 0},
		OverdueReminderDays: 3,
	}

	cases := []struct {
		daysPast int
		want     bool
	}{
		{1, false},
		{2, false},
		{3, true},
		{4, false},
		{6, true},
		{9, true},
	}

	for _, c := range cases {
		sc.DueDate = reminderTestNow.AddDate(0, 0, -c.daysPast)
		days, due := s.dueForReminder(sc)
		if due != c.want {
			t.Errorf("%d days overdue: got %v, want %v", c.daysPast, due, c.want)
		}
		if days != -c.daysPast {
			t.Errorf("%d days overdue: counted %d", c.daysPast, days)
		}
	}
}

func TestDueForReminderOverdueDefaultCadence(t *testing.T) {
	s := reminderServiceAt(reminderTestNow)
	sc := &models.PaymentSchedule{
		DueDate: reminderTestNow.AddDate(0, 0, -3),
	}

	if _, due := s.dueForReminder(sc); !due {
		t.Fatal("expected reminder at default 3 day cadence")
	}
}

func TestDaysUntilDueIgnoresTimeOfDay(t *testing.T) {
	s := reminderServiceAt(reminderTestNow)

	// Due late tomorrow evening is still 1 day away
	due := time.Date(2026, time.June, 16, 23, 30, 0, 0, timeutil.IST)
	if days := s.daysUntilDue(due); days != 1 {
		t.Fatalf("expected 1 day, got %d", days)
	}

	// Due early this morning is today
	due = time.Date(2026, time.June, 15, 0, 15, 0, 0, timeutil.IST)
	if days := s.daysUntilDue(due); days != 0 {
		t.Fatalf("expected 0 days, got %d", days)
	}
}
