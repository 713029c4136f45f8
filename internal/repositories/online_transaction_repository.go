package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
)

const onlineTransactionColumns = `id, user_id, razorpay_order_id, razorpay_payment_id,
    razorpay_signature, customer_id, customer_phone, customer_name, schedule_id,
    amount, payment_method, vpa, utr_number, status, failure_reason, transaction_id,
    created_at, completed_at`

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

func scanOnlineTransaction(row interface{ Scan(...any) error }) (*models.OnlineTransaction, error) {
	var ot models.OnlineTransaction
	err := row.Scan(&ot.ID, &ot.UserID, &ot.RazorpayOrderID, &ot.RazorpayPaymentID,
		&ot.RazorpaySignature, &ot.CustomerID, &ot.CustomerPhone, &ot.CustomerName,
		&ot.ScheduleID, &ot.Amount, &ot.PaymentMethod, &ot.VPA, &ot.UTRNumber,
		&ot.Status, &ot.FailureReason, &ot.TransactionID, &ot.CreatedAt, &ot.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &ot, nil
}

func (r *OnlineTransactionRepository) Create(ctx context.Context, ot *models.OnlineTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(user_id, razorpay_order_id, customer_id,
             customer_phone, customer_name, schedule_id, amount, status)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at`,
		ot.UserID, ot.RazorpayOrderID, ot.CustomerID, ot.CustomerPhone,
		ot.CustomerName, ot.ScheduleID, ot.Amount, ot.Status,
	).Scan(&ot.ID, &ot.CreatedAt)
}

func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+onlineTransactionColumns+` FROM online_transactions
         WHERE razorpay_order_id=$1`, orderID)
	return scanOnlineTransaction(row)
}

// MarkSuccess records the payment and links the resulting ledger transaction
func (r *OnlineTransactionRepository) MarkSuccess(ctx context.Context, ot *models.OnlineTransaction) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
         SET status='success', razorpay_payment_id=$1, razorpay_signature=$2,
             payment_method=$3, vpa=$4, utr_number=$5, transaction_id=$6,
             completed_at=NOW()
         WHERE id=$7`,
		ot.RazorpayPaymentID, ot.RazorpaySignature, ot.PaymentMethod, ot.VPA,
		ot.UTRNumber, ot.TransactionID, ot.ID)
	return err
}

func (r *OnlineTransactionRepository) MarkFailed(ctx context.Context, id int, reason string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
         SET status='failed', failure_reason=$1, completed_at=NOW()
         WHERE id=$2`, reason, id)
	return err
}

func (r *OnlineTransactionRepository) ListByUser(ctx context.Context, userID int) ([]*models.OnlineTransaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+onlineTransactionColumns+` FROM online_transactions
         WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.OnlineTransaction
	for rows.Next() {
		ot, err := scanOnlineTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ot)
	}
	return list, rows.Err()
}
