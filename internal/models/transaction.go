package models

import "time"

// TransactionType is the side of the ledger a transaction posts to
type TransactionType string

const (
	TransactionTypeCredit  TransactionType = "credit"  // goods given on credit, balance goes up
	TransactionTypePayment TransactionType = "payment" // money received, balance goes down
	TransactionTypeSale    TransactionType = "sale"    // cash sale, no balance change
)

// PaymentMethod records how a payment transaction was settled
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
)

// TransactionItem is one product line on a sale/credit transaction.
// Stored as a JSONB document on the transaction row.
type TransactionItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	GSTRate   float64 `json:"gst_rate"`
	Total     float64 `json:"total"`
}

// Transaction is one posted credit, payment or sale for a customer
type Transaction struct {
	ID            int               `json:"id"`
	UserID        int               `json:"user_id"`
	CustomerID    int               `json:"customer_id"`
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
	ReceiptNumber string            `json:"receipt_number"`
	Type          TransactionType   `json:"type"`
	Amount        float64           `json:"amount"`
	PaymentMethod PaymentMethod     `json:"payment_method,omitempty"`
	Items         []TransactionItem `json:"items,omitempty"`
	BalanceAfter  float64           `json:"balance_after"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CreateTransactionRequest represents the request body for posting a transaction
type CreateTransactionRequest struct {
	CustomerID    int               `json:"customer_id"`
	Type          TransactionType   `json:"type"`
	Amount        float64           `json:"amount"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	Items         []TransactionItem `json:"items"`
	Notes         string            `json:"notes"`
}

// ValidPaymentMethod reports whether m is one of the known settlement methods
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodOnline:
		return true
	}
	return false
}

// ValidTransactionType reports whether t is one of the known types
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeCredit, TransactionTypePayment, TransactionTypeSale:
		return true
	}
	return false
}
