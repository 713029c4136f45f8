package models

import (
	"testing"
	"time"
)

var scheduleNow = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

func TestDeriveFullyPaidRegardlessOfDueDate(t *testing.T) {
	s := &PaymentSchedule{
		TotalAmount: 1000,
		PaidAmount:  1000,
		DueDate:     scheduleNow.AddDate(0, 0, -30),
	}
	s.Derive(scheduleNow)
	if s.Status != ScheduleStatusPaid {
		t.Fatalf("expected paid, got %s", s.Status)
	}
	if s.RemainingAmount != 0 {
		t.Fatalf("expected remaining 0, got %v", s.RemainingAmount)
	}
}

func TestDeriveOverdueWhenUnpaidPastDue(t *testing.T) {
	s := &PaymentSchedule{
		TotalAmount: 1000,
		DueDate:     scheduleNow.AddDate(0, 0, -1),
	}
	s.Derive(scheduleNow)
	if s.Status != ScheduleStatusOverdue {
		t.Fatalf("expected overdue, got %s", s.Status)
	}
}

func TestDerivePartialBeatsOverdue(t *testing.T) {
	s := &PaymentSchedule{
		TotalAmount: 1000,
		PaidAmount:  300,
		DueDate:     scheduleNow.AddDate(0, 0, -5),
	}
	s.Derive(scheduleNow)
	if s.Status != ScheduleStatusPartial {
		t.Fatalf("expected partial, got %s", s.Status)
	}
	if s.RemainingAmount != 700 {
		t.Fatalf("expected remaining 700, got %v", s.RemainingAmount)
	}
}

func TestDeriveLateFeeKeepsScheduleUnpaid(t *testing.T) {
	// Paid the original total but a late fee is outstanding
	s := &PaymentSchedule{
		TotalAmount:    1000,
		PaidAmount:     1000,
		LateFeeApplied: 50,
		DueDate:        scheduleNow.AddDate(0, 0, -10),
	}
	s.Derive(scheduleNow)
	if s.Status != ScheduleStatusPartial {
		t.Fatalf("expected partial with late fee outstanding, got %s", s.Status)
	}
	if s.RemainingAmount != 50 {
		t.Fatalf("expected remaining 50, got %v", s.RemainingAmount)
	}
}

func TestDeriveCancelledSticks(t *testing.T) {
	s := &PaymentSchedule{
		TotalAmount: 500,
		DueDate:     scheduleNow.AddDate(0, 0, -1),
	}
	s.Cancel()
	s.Derive(scheduleNow)
	if s.Status != ScheduleStatusCancelled {
		t.Fatalf("cancelled must not be re-derived, got %s", s.Status)
	}
}

func TestRecordPaymentAgainstInstallment(t *testing.T) {
	s := &PaymentSchedule{
		TotalAmount:  600,
		ScheduleType: ScheduleTypeInstallment,
		DueDate:      scheduleNow.AddDate(0, 0, 30),
		Installments: []Installment{
			{Number: 1, Amount: 200, DueDate: scheduleNow.AddDate(0, 0, 30)},
			{Number: 2, Amount: 200, DueDate: scheduleNow.AddDate(0, 0, 60)},
			{Number: 3, Amount: 200, DueDate: scheduleNow.AddDate(0, 0, 90)},
		},
	}

	idx := 0
	if err := s.RecordPayment(200, &idx, scheduleNow); err != nil {
		t.Fatalf("record payment failed: %v", err)
	}
	if s.PaidAmount != 200 {
		t.Fatalf("expected aggregate paid 200, got %v", s.PaidAmount)
	}
	inst := s.Installments[0]
	if inst.PaidAmount != 200 {
		t.Fatalf("expected installment paid 200, got %v", inst.PaidAmount)
	}
	if inst.PaidDate == nil || !inst.PaidDate.Equal(scheduleNow) {
		t.Fatalf("expected paid date stamped to now, got %v", inst.PaidDate)
	}
	if inst.Status != ScheduleStatusPaid {
		t.Fatalf("expected installment paid, got %s", inst.Status)
	}
	if s.Status != ScheduleStatusPartial {
		t.Fatalf("expected schedule partial, got %s", s.Status)
	}
}

func TestRecordPaymentRejectsBadInput(t *testing.T) {
	s := &PaymentSchedule{TotalAmount: 100, DueDate: scheduleNow}
	if err := s.RecordPayment(0, nil, scheduleNow); err != ErrNonPositiveAmount {
		t.Fatalf("expected ErrNonPositiveAmount, got %v", err)
	}
	idx := 2
	if err := s.RecordPayment(50, &idx, scheduleNow); err != ErrInstallmentIndex {
		t.Fatalf("expected ErrInstallmentIndex, got %v", err)
	}
	if s.PaidAmount != 0 {
		t.Fatalf("rejected payments must not mutate the schedule")
	}
}

func TestApplyLateFeeDisabled(t *testing.T) {
	s := &PaymentSchedule{
		TotalAmount:    1000,
		DueDate:        scheduleNow.AddDate(0, 0, -3),
		LateFeeEnabled: false,
		LateFeeValue:   100,
	}
	if fee := s.ApplyLateFee(scheduleNow); fee != 0 {
		t.Fatalf("expected no fee when disabled, got %v", fee)
	}
	if s.LateFeeApplied != 0 {
		t.Fatalf("late fee must stay zero when disabled")
	}
}

func TestApplyLateFeeOnlyWhenOverdue(t *testing.T) {
	s := &PaymentSchedule{
		TotalAmount:    1000,
		DueDate:        scheduleNow.AddDate(0, 0, 3),
		LateFeeEnabled: true,
		LateFeeType:    LateFeeTypeFixed,
		LateFeeValue:   50,
	}
	if fee := s.ApplyLateFee(scheduleNow); fee != 0 {
		t.Fatalf("expected no fee before due date, got %v", fee)
	}
}

func TestApplyLateFeePercentageOfTotal(t *testing.T) {
	// Percentage fees compute against the total amount even when partially
	// paid; that financial semantic is fixed.
	s := &PaymentSchedule{
		TotalAmount:    1000,
		PaidAmount:     0,
		DueDate:        scheduleNow.AddDate(0, 0, -3),
		LateFeeEnabled: true,
		LateFeeType:    LateFeeTypePercentage,
		LateFeeValue:   2,
	}
	if fee := s.ApplyLateFee(scheduleNow); fee != 20 {
		t.Fatalf("expected fee 20, got %v", fee)
	}
	if s.LateFeeApplied != 20 {
		t.Fatalf("expected accumulated fee 20, got %v", s.LateFeeApplied)
	}
	if s.RemainingAmount != 1020 {
		t.Fatalf("expected remaining 1020, got %v", s.RemainingAmount)
	}
}

func TestLevelTriggeredDerivationFlipsOnLaterDay(t *testing.T) {
	s := &PaymentSchedule{
		TotalAmount: 400,
		DueDate:     scheduleNow.AddDate(0, 0, 1),
	}
	s.Derive(scheduleNow)
	if s.Status != ScheduleStatusPending {
		t.Fatalf("expected pending before due, got %s", s.Status)
	}

	s.Derive(scheduleNow.AddDate(0, 0, 2))
	if s.Status != ScheduleStatusOverdue {
		t.Fatalf("expected overdue after due date passes, got %s", s.Status)
	}
}
