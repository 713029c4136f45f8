package models

import "time"

// ScheduleStatus applies to a schedule and to each installment.
// cancelled is set externally and is never derived.
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "pending"
	ScheduleStatusPartial   ScheduleStatus = "partial"
	ScheduleStatusPaid      ScheduleStatus = "paid"
	ScheduleStatusOverdue   ScheduleStatus = "overdue"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// ScheduleType is the shape of the payment plan
type ScheduleType string

const (
	ScheduleTypeOneTime     ScheduleType = "one_time"
	ScheduleTypeInstallment ScheduleType = "installment"
	ScheduleTypeRecurring   ScheduleType = "recurring"
)

// LateFeeType selects how ApplyLateFee computes the fee
type LateFeeType string

const (
	LateFeeTypeFixed      LateFeeType = "fixed"
	LateFeeTypePercentage LateFeeType = "percentage"
)

// ReminderChannel is the customer's preferred reminder medium
type ReminderChannel string

const (
	ReminderChannelWhatsApp ReminderChannel = "whatsapp"
	ReminderChannelSMS      ReminderChannel = "sms"
)

// DefaultReminderDays are the days-before-due offsets used when a schedule
// does not specify its own
var DefaultReminderDays = []int{3, 1, 0}

// Installment is one scheduled partial payment within a plan.
// Stored as a JSONB document on the schedule row.
type Installment struct {
	Number     int            `json:"number"`
	Amount     float64        `json:"amount"`
	DueDate    time.Time      `json:"due_date"`
	PaidDate   *time.Time     `json:"paid_date,omitempty"`
	PaidAmount float64        `json:"paid_amount"`
	Status     ScheduleStatus `json:"status"`
}

// PaymentSchedule links a customer (and optionally a transaction) to a
// due-date/installment plan, late-fee policy and reminder cadence.
type PaymentSchedule struct {
	ID            int    `json:"id"`
	UserID        int    `json:"user_id"`
	CustomerID    int    `json:"customer_id"`
	TransactionID *int   `json:"transaction_id,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`

	TotalAmount     float64 `json:"total_amount"`
	PaidAmount      float64 `json:"paid_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
	LateFeeApplied  float64 `json:"late_fee_applied"`

	ScheduleType         ScheduleType  `json:"schedule_type"`
	DueDate              time.Time     `json:"due_date"`
	Installments         []Installment `json:"installments,omitempty"`
	NumberOfInstallments int           `json:"number_of_installments,omitempty"`
	InstallmentFrequency string        `json:"installment_frequency,omitempty"` // weekly, biweekly, monthly

	ReminderEnabled     bool            `json:"reminder_enabled"`
	ReminderDays        []int           `json:"reminder_days"` // days before due, e.g. [3,1,0]
	OverdueReminderDays int             `json:"overdue_reminder_days"`
	ReminderChannel     ReminderChannel `json:"preferred_reminder_channel,omitempty"`

	LateFeeEnabled bool        `json:"late_fee_enabled"`
	LateFeeType    LateFeeType `json:"late_fee_type,omitempty"`
	LateFeeValue   float64     `json:"late_fee_value,omitempty"`

	// Promise-to-pay is a soft commitment and never affects derived status
	PromisedDate   *time.Time `json:"promised_date,omitempty"`
	PromisedAmount float64    `json:"promised_amount,omitempty"`
	PromiseNotes   string     `json:"promise_notes,omitempty"`

	Status    ScheduleStatus `json:"status"`
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// deriveStatus is the three-way rule shared by schedules and installments.
// Equality of paid and owed resolves to paid, not partial.
func deriveStatus(total, paid float64, due time.Time, now time.Time) ScheduleStatus {
	switch {
	case paid >= total:
		return ScheduleStatusPaid
	case paid > 0:
		return ScheduleStatusPartial
	case now.After(due):
		return ScheduleStatusOverdue
	default:
		return ScheduleStatusPending
	}
}

// Derive recomputes remaining amount and the schedule and installment
// statuses against the given clock. Statuses are level-triggered: the same
// inputs on a later day can move pending to overdue. A cancelled schedule
// or installment keeps its status.
func (s *PaymentSchedule) Derive(now time.Time) {
	s.RemainingAmount = s.TotalAmount - s.PaidAmount + s.LateFeeApplied

	for i := range s.Installments {
		inst := &s.Installments[i]
		if inst.Status == ScheduleStatusCancelled {
			continue
		}
		inst.Status = deriveStatus(inst.Amount, inst.PaidAmount, inst.DueDate, now)
	}

	if s.Status == ScheduleStatusCancelled {
		return
	}
	s.Status = deriveStatus(s.TotalAmount+s.LateFeeApplied, s.PaidAmount, s.DueDate, now)
}

// RecordPayment applies a payment to the schedule, and to one installment
// when installmentIndex is non-nil (zero-based). The aggregate paid amount
// always moves; the installment additionally gets its paid date stamped.
func (s *PaymentSchedule) RecordPayment(amount float64, installmentIndex *int, now time.Time) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if s.Status == ScheduleStatusCancelled {
		return ErrScheduleCancelled
	}

	if installmentIndex != nil {
		idx := *installmentIndex
		if idx < 0 || idx >= len(s.Installments) {
			return ErrInstallmentIndex
		}
		inst := &s.Installments[idx]
		inst.PaidAmount += amount
		paidAt := now
		inst.PaidDate = &paidAt
	}

	s.PaidAmount += amount
	s.Derive(now)
	return nil
}

// ApplyLateFee accumulates the configured late fee when the schedule is
// currently overdue. The fee is computed against the total amount, never
// the remaining balance, also for partially paid schedules. Returns the
// fee applied, zero when nothing was applied.
func (s *PaymentSchedule) ApplyLateFee(now time.Time) float64 {
	s.Derive(now)
	if !s.LateFeeEnabled || s.Status != ScheduleStatusOverdue {
		return 0
	}

	var fee float64
	switch s.LateFeeType {
	case LateFeeTypePercentage:
		fee = s.TotalAmount * s.LateFeeValue / 100
	default:
		fee = s.LateFeeValue
	}

	s.LateFeeApplied += fee
	s.Derive(now)
	return fee
}

// Cancel marks the schedule cancelled. The status sticks: Derive never
// overwrites it afterwards.
func (s *PaymentSchedule) Cancel() {
	s.Status = ScheduleStatusCancelled
}

// CreatePaymentScheduleRequest represents the request body for creating a schedule
type CreatePaymentScheduleRequest struct {
	CustomerID           int             `json:"customer_id"`
	TransactionID        *int            `json:"transaction_id"`
	InvoiceNumber        string          `json:"invoice_number"`
	TotalAmount          float64         `json:"total_amount"`
	ScheduleType         ScheduleType    `json:"schedule_type"`
	DueDate              time.Time       `json:"due_date"`
	NumberOfInstallments int             `json:"number_of_installments"`
	InstallmentFrequency string          `json:"installment_frequency"`
	ReminderEnabled      bool            `json:"reminder_enabled"`
	ReminderDays         []int           `json:"reminder_days"`
	OverdueReminderDays  int             `json:"overdue_reminder_days"`
	ReminderChannel      ReminderChannel `json:"preferred_reminder_channel"`
	LateFeeEnabled       bool            `json:"late_fee_enabled"`
	LateFeeType          LateFeeType     `json:"late_fee_type"`
	LateFeeValue         float64         `json:"late_fee_value"`
}

// RecordPaymentRequest represents the request body for recording a payment
type RecordPaymentRequest struct {
	Amount           float64 `json:"amount"`
	InstallmentIndex *int    `json:"installment_index,omitempty"`
}

// PromiseToPayRequest represents the request body for a promise-to-pay
type PromiseToPayRequest struct {
	PromisedDate   time.Time `json:"promised_date"`
	PromisedAmount float64   `json:"promised_amount"`
	Notes          string    `json:"notes"`
}
