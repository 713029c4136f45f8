package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
)

const customerColumns = `id, user_id, name, phone, alternate_phone, email, customer_type,
    gst_number, pan_number, tax_preference, credit_limit, current_balance,
    payment_terms, custom_payment_days, total_purchases, total_payments,
    total_transactions, average_order_value, highest_balance, on_time_payments,
    late_payments, is_active, version, created_at, updated_at`

type CustomerRepository struct {
	DB Querier
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// WithTx returns a copy bound to the given transaction
func (r *CustomerRepository) WithTx(q Querier) *CustomerRepository {
	return &CustomerRepository{DB: q}
}

func scanCustomer(row interface{ Scan(...any) error }) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.AlternatePhone, &c.Email,
		&c.CustomerType, &c.GSTNumber, &c.PANNumber, &c.TaxPreference, &c.CreditLimit,
		&c.CurrentBalance, &c.PaymentTerms, &c.CustomPaymentDays, &c.TotalPurchases,
		&c.TotalPayments, &c.TotalTransactions, &c.AverageOrderValue, &c.HighestBalance,
		&c.OnTimePayments, &c.LatePayments, &c.IsActive, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(user_id, name, phone, alternate_phone, email, customer_type,
             gst_number, pan_number, tax_preference, credit_limit, payment_terms, custom_payment_days)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
         RETURNING id, version, created_at, updated_at`,
		c.UserID, c.Name, c.Phone, c.AlternatePhone, c.Email, c.CustomerType,
		c.GSTNumber, c.PANNumber, c.TaxPreference, c.CreditLimit, c.PaymentTerms, c.CustomPaymentDays,
	).Scan(&c.ID, &c.Version, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, userID, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1 AND user_id=$2`, id, userID)
	return scanCustomer(row)
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, userID int, phone string) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE user_id=$1 AND phone=$2`, userID, phone)
	return scanCustomer(row)
}

func (r *CustomerRepository) List(ctx context.Context, userID int) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
         WHERE user_id=$1 AND is_active=TRUE ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update writes the full customer row guarded by the version read earlier.
// A concurrent writer bumps the version and this update matches no row.
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE customers SET name=$1, phone=$2, alternate_phone=$3, email=$4,
             customer_type=$5, gst_number=$6, pan_number=$7, tax_preference=$8,
             credit_limit=$9, current_balance=$10, payment_terms=$11, custom_payment_days=$12,
             total_purchases=$13, total_payments=$14, total_transactions=$15,
             average_order_value=$16, highest_balance=$17, on_time_payments=$18,
             late_payments=$19, is_active=$20, version=version+1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$21 AND user_id=$22 AND version=$23`,
		c.Name, c.Phone, c.AlternatePhone, c.Email, c.CustomerType, c.GSTNumber,
		c.PANNumber, c.TaxPreference, c.CreditLimit, c.CurrentBalance, c.PaymentTerms,
		c.CustomPaymentDays, c.TotalPurchases, c.TotalPayments, c.TotalTransactions,
		c.AverageOrderValue, c.HighestBalance, c.OnTimePayments, c.LatePayments,
		c.IsActive, c.ID, c.UserID, c.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrVersionConflict
	}
	c.Version++
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, userID, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}

// TopDebtors returns the customers with the highest outstanding balances
func (r *CustomerRepository) TopDebtors(ctx context.Context, userID, limit int) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
         WHERE user_id=$1 AND is_active=TRUE AND current_balance > 0
         ORDER BY current_balance DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// CountAndOutstanding returns the active customer count and the summed
// positive balances for the dashboard
func (r *CustomerRepository) CountAndOutstanding(ctx context.Context, userID int) (int, float64, error) {
	var count int
	var outstanding float64
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(GREATEST(current_balance, 0)), 0)
         FROM customers WHERE user_id=$1 AND is_active=TRUE`, userID,
	).Scan(&count, &outstanding)
	return count, outstanding, err
}
