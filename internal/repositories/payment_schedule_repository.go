package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
)

const scheduleColumns = `id, user_id, customer_id, transaction_id, invoice_number,
    total_amount, paid_amount, remaining_amount, late_fee_applied, schedule_type,
    due_date, installments, number_of_installments, installment_frequency,
    reminder_enabled, reminder_days, overdue_reminder_days, reminder_channel,
    late_fee_enabled, late_fee_type, late_fee_value, promised_date, promised_amount,
    promise_notes, status, version, created_at, updated_at`

type PaymentScheduleRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentScheduleRepository(db *pgxpool.Pool) *PaymentScheduleRepository {
	return &PaymentScheduleRepository{DB: db}
}

func scanSchedule(row interface{ Scan(...any) error }) (*models.PaymentSchedule, error) {
	var s models.PaymentSchedule
	err := row.Scan(&s.ID, &s.UserID, &s.CustomerID, &s.TransactionID, &s.InvoiceNumber,
		&s.TotalAmount, &s.PaidAmount, &s.RemainingAmount, &s.LateFeeApplied,
		&s.ScheduleType, &s.DueDate, &s.Installments, &s.NumberOfInstallments,
		&s.InstallmentFrequency, &s.ReminderEnabled, &s.ReminderDays,
		&s.OverdueReminderDays, &s.ReminderChannel, &s.LateFeeEnabled, &s.LateFeeType,
		&s.LateFeeValue, &s.PromisedDate, &s.PromisedAmount, &s.PromiseNotes,
		&s.Status, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PaymentScheduleRepository) Create(ctx context.Context, s *models.PaymentSchedule) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO payment_schedules(user_id, customer_id, transaction_id,
             invoice_number, total_amount, paid_amount, remaining_amount,
             late_fee_applied, schedule_type, due_date, installments,
             number_of_installments, installment_frequency, reminder_enabled,
             reminder_days, overdue_reminder_days, reminder_channel,
             late_fee_enabled, late_fee_type, late_fee_value, status)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
         RETURNING id, version, created_at, updated_at`,
		s.UserID, s.CustomerID, s.TransactionID, s.InvoiceNumber, s.TotalAmount,
		s.PaidAmount, s.RemainingAmount, s.LateFeeApplied, s.ScheduleType, s.DueDate,
		s.Installments, s.NumberOfInstallments, s.InstallmentFrequency,
		s.ReminderEnabled, s.ReminderDays, s.OverdueReminderDays, s.ReminderChannel,
		s.LateFeeEnabled, s.LateFeeType, s.LateFeeValue, s.Status,
	).Scan(&s.ID, &s.Version, &s.CreatedAt, &s.UpdatedAt)
}

func (r *PaymentScheduleRepository) Get(ctx context.Context, userID, id int) (*models.PaymentSchedule, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM payment_schedules WHERE id=$1 AND user_id=$2`, id, userID)
	return scanSchedule(row)
}

func (r *PaymentScheduleRepository) List(ctx context.Context, userID int) ([]*models.PaymentSchedule, error) {
	return r.queryMany(ctx,
		`SELECT `+scheduleColumns+` FROM payment_schedules
         WHERE user_id=$1 ORDER BY due_date ASC`, userID)
}

func (r *PaymentScheduleRepository) ListByCustomer(ctx context.Context, userID, customerID int) ([]*models.PaymentSchedule, error) {
	return r.queryMany(ctx,
		`SELECT `+scheduleColumns+` FROM payment_schedules
         WHERE user_id=$1 AND customer_id=$2 ORDER BY due_date ASC`, userID, customerID)
}

// Update writes the full schedule row guarded by the version read earlier
func (r *PaymentScheduleRepository) Update(ctx context.Context, s *models.PaymentSchedule) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE payment_schedules SET total_amount=$1, paid_amount=$2,
             remaining_amount=$3, late_fee_applied=$4, schedule_type=$5, due_date=$6,
             installments=$7, number_of_installments=$8, installment_frequency=$9,
             reminder_enabled=$10, reminder_days=$11, overdue_reminder_days=$12,
             reminder_channel=$13, late_fee_enabled=$14, late_fee_type=$15,
             late_fee_value=$16, promised_date=$17, promised_amount=$18,
             promise_notes=$19, status=$20, version=version+1,
             updated_at=CURRENT_TIMESTAMP
         WHERE id=$21 AND user_id=$22 AND version=$23`,
		s.TotalAmount, s.PaidAmount, s.RemainingAmount, s.LateFeeApplied,
		s.ScheduleType, s.DueDate, s.Installments, s.NumberOfInstallments,
		s.InstallmentFrequency, s.ReminderEnabled, s.ReminderDays,
		s.OverdueReminderDays, s.ReminderChannel, s.LateFeeEnabled, s.LateFeeType,
		s.LateFeeValue, s.PromisedDate, s.PromisedAmount, s.PromiseNotes, s.Status,
		s.ID, s.UserID, s.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrVersionConflict
	}
	s.Version++
	return nil
}

// GetUpcoming returns open schedules due within the given number of days,
// earliest due date first
func (r *PaymentScheduleRepository) GetUpcoming(ctx context.Context, userID, days int) ([]*models.PaymentSchedule, error) {
	return r.queryMany(ctx,
		`SELECT `+scheduleColumns+` FROM payment_schedules
         WHERE user_id=$1 AND status IN ('pending', 'partial')
           AND due_date >= NOW() AND due_date <= NOW() + ($2 || ' days')::interval
         ORDER BY due_date ASC`, userID, days)
}

// GetOverdue returns open schedules whose due date has passed
func (r *PaymentScheduleRepository) GetOverdue(ctx context.Context, userID int) ([]*models.PaymentSchedule, error) {
	return r.queryMany(ctx,
		`SELECT `+scheduleColumns+` FROM payment_schedules
         WHERE user_id=$1 AND status IN ('pending', 'partial', 'overdue')
           AND due_date < NOW()
         ORDER BY due_date ASC`, userID)
}

// GetDueToday returns open schedules due on the current IST day
func (r *PaymentScheduleRepository) GetDueToday(ctx context.Context, userID int) ([]*models.PaymentSchedule, error) {
	return r.queryMany(ctx,
		`SELECT `+scheduleColumns+` FROM payment_schedules
         WHERE user_id=$1 AND status IN ('pending', 'partial')
           AND `+istDate("due_date")+` = `+istDate("NOW()")+`
         ORDER BY due_date ASC`, userID)
}

// GetOpenForReminders returns every open schedule with reminders enabled,
// across all shops, for the reminder sweep
func (r *PaymentScheduleRepository) GetOpenForReminders(ctx context.Context) ([]*models.PaymentSchedule, error) {
	return r.queryMany(ctx,
		`SELECT `+scheduleColumns+` FROM payment_schedules
         WHERE status IN ('pending', 'partial', 'overdue') AND reminder_enabled=TRUE
         ORDER BY due_date ASC`)
}

// OverdueStats returns the overdue count and outstanding total for the dashboard
func (r *PaymentScheduleRepository) OverdueStats(ctx context.Context, userID int) (count int, outstanding float64, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(remaining_amount), 0)
         FROM payment_schedules
         WHERE user_id=$1 AND status='overdue'`, userID,
	).Scan(&count, &outstanding)
	return count, outstanding, err
}

func (r *PaymentScheduleRepository) queryMany(ctx context.Context, sql string, args ...any) ([]*models.PaymentSchedule, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.PaymentSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}
