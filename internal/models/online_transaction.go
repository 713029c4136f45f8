package models

import "time"

// OnlineTransactionStatus represents the status of an online payment
type OnlineTransactionStatus string

const (
	OnlineTxStatusPending  OnlineTransactionStatus = "pending"
	OnlineTxStatusSuccess  OnlineTransactionStatus = "success"
	OnlineTxStatusFailed   OnlineTransactionStatus = "failed"
	OnlineTxStatusRefunded OnlineTransactionStatus = "refunded"
)

// OnlineTransaction records one Razorpay payment attempt against a
// payment schedule
type OnlineTransaction struct {
	ID                int    `json:"id"`
	UserID            int    `json:"user_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `json:"-"` // Don't expose signature in JSON

	CustomerID    int    `json:"customer_id"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
	ScheduleID    int    `json:"schedule_id"`

	// Amounts in rupees
	Amount float64 `json:"amount"`

	// Payment details from Razorpay
	PaymentMethod string `json:"payment_method,omitempty"` // upi, card, netbanking, wallet
	VPA           string `json:"vpa,omitempty"`            // UPI ID
	UTRNumber     string `json:"utr_number,omitempty"`

	Status        OnlineTransactionStatus `json:"status"`
	FailureReason string                  `json:"failure_reason,omitempty"`

	// Linked domain transaction once the payment lands in the ledger
	TransactionID *int `json:"transaction_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateOnlinePaymentRequest initiates an online payment for a schedule
type CreateOnlinePaymentRequest struct {
	ScheduleID int     `json:"schedule_id"`
	Amount     float64 `json:"amount"`
}

// CreateOrderResponse is returned to the client for Razorpay checkout
type CreateOrderResponse struct {
	OrderID       string `json:"order_id"`
	Amount        int    `json:"amount"` // In paise
	Currency      string `json:"currency"`
	KeyID         string `json:"key_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// VerifyPaymentRequest is sent from the client after Razorpay checkout
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
