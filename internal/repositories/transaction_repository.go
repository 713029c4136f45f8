package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
)

const transactionColumns = `t.id, t.user_id, t.customer_id, c.name, c.phone,
    t.receipt_number, t.type, t.amount, t.payment_method, t.items, t.balance_after,
    t.notes, t.created_at`

type TransactionRepository struct {
	DB Querier
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// WithTx returns a copy bound to the given transaction
func (r *TransactionRepository) WithTx(q Querier) *TransactionRepository {
	return &TransactionRepository{DB: q}
}

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.CustomerID, &t.CustomerName, &t.CustomerPhone,
		&t.ReceiptNumber, &t.Type, &t.Amount, &t.PaymentMethod, &t.Items,
		&t.BalanceAfter, &t.Notes, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// HasRecentDuplicate reports whether the same customer already has a
// transaction of the same type and amount inside the guard window. Double
// taps on slow connections otherwise post the same entry twice.
func (r *TransactionRepository) HasRecentDuplicate(ctx context.Context, userID, customerID int, txType models.TransactionType, amount float64, window time.Duration) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions
         WHERE user_id=$1 AND customer_id=$2 AND type=$3 AND amount=$4
           AND created_at > NOW() - ($5 || ' seconds')::interval`,
		userID, customerID, txType, amount, int(window.Seconds()),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the transaction and assigns its receipt number from the
// shared sequence
func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	var seq int64
	if err := r.DB.QueryRow(ctx, `SELECT nextval('receipt_number_sequence')`).Scan(&seq); err != nil {
		return err
	}
	t.ReceiptNumber = fmt.Sprintf("RCP-%06d", seq)

	return r.DB.QueryRow(ctx,
		`INSERT INTO transactions(user_id, customer_id, receipt_number, type, amount,
             payment_method, items, balance_after, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at`,
		t.UserID, t.CustomerID, t.ReceiptNumber, t.Type, t.Amount, t.PaymentMethod,
		t.Items, t.BalanceAfter, t.Notes,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TransactionRepository) Get(ctx context.Context, userID, id int) (*models.Transaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions t
         JOIN customers c ON c.id = t.customer_id
         WHERE t.id=$1 AND t.user_id=$2`, id, userID)
	return scanTransaction(row)
}

func (r *TransactionRepository) GetByReceipt(ctx context.Context, userID int, receiptNumber string) (*models.Transaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions t
         JOIN customers c ON c.id = t.customer_id
         WHERE t.receipt_number=$1 AND t.user_id=$2`, receiptNumber, userID)
	return scanTransaction(row)
}

func (r *TransactionRepository) List(ctx context.Context, userID, limit int) ([]*models.Transaction, error) {
	return r.queryMany(ctx,
		`SELECT `+transactionColumns+` FROM transactions t
         JOIN customers c ON c.id = t.customer_id
         WHERE t.user_id=$1 ORDER BY t.created_at DESC LIMIT $2`, userID, limit)
}

func (r *TransactionRepository) ListByCustomer(ctx context.Context, userID, customerID int) ([]*models.Transaction, error) {
	return r.queryMany(ctx,
		`SELECT `+transactionColumns+` FROM transactions t
         JOIN customers c ON c.id = t.customer_id
         WHERE t.user_id=$1 AND t.customer_id=$2 ORDER BY t.created_at DESC`, userID, customerID)
}

// DailyTotals returns outgoing and incoming sums for the current IST day
func (r *TransactionRepository) DailyTotals(ctx context.Context, userID int) (credit, payment float64, count int, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount) FILTER (WHERE type IN ('credit', 'sale')), 0),
                COALESCE(SUM(amount) FILTER (WHERE type='payment'), 0),
                COUNT(*)
         FROM transactions
         WHERE user_id=$1
           AND `+istDate("created_at")+` = `+istDate("NOW()"), userID,
	).Scan(&credit, &payment, &count)
	return credit, payment, count, err
}

// MonthlyTotals returns outgoing and incoming sums for the current IST month
func (r *TransactionRepository) MonthlyTotals(ctx context.Context, userID int) (credit, payment float64, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount) FILTER (WHERE type IN ('credit', 'sale')), 0),
                COALESCE(SUM(amount) FILTER (WHERE type='payment'), 0)
         FROM transactions
         WHERE user_id=$1
           AND `+istMonth("created_at")+` = `+istMonth("NOW()"), userID,
	).Scan(&credit, &payment)
	return credit, payment, err
}

func (r *TransactionRepository) queryMany(ctx context.Context, sql string, args ...any) ([]*models.Transaction, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
