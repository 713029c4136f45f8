package models

import (
	"math"
	"regexp"
	"time"
)

// CustomerType classifies a customer for pricing/reporting
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeBusiness   CustomerType = "business"
	CustomerTypeRetailer   CustomerType = "retailer"
	CustomerTypeWholesaler CustomerType = "wholesaler"
)

// PaymentTerms is the agreed credit period for a customer
type PaymentTerms string

const (
	PaymentTermsImmediate PaymentTerms = "immediate"
	PaymentTermsNet7      PaymentTerms = "net_7"
	PaymentTermsNet15     PaymentTerms = "net_15"
	PaymentTermsNet30     PaymentTerms = "net_30"
	PaymentTermsNet45     PaymentTerms = "net_45"
	PaymentTermsNet60     PaymentTerms = "net_60"
	PaymentTermsCustom    PaymentTerms = "custom"
)

// StatKind is the transaction side recorded by UpdateStats
type StatKind string

const (
	StatKindCredit  StatKind = "credit"
	StatKindPayment StatKind = "payment"
)

var (
	// GSTIN format: state code, PAN, entity number, literal 'Z', check digit
	gstRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[A-Z0-9]{1}Z[A-Z0-9]{1}$`)
	panRegex = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
)

// ValidGSTNumber reports whether s matches the 15-character GSTIN pattern
func ValidGSTNumber(s string) bool {
	return gstRegex.MatchString(s)
}

// ValidPANNumber reports whether s matches the 10-character PAN pattern
func ValidPANNumber(s string) bool {
	return panRegex.MatchString(s)
}

// Customer holds the ledger, credit terms and loyalty stats for one
// customer of one shop owner. Phone is unique per owner.
type Customer struct {
	ID                int          `json:"id"`
	UserID            int          `json:"user_id"`
	Name              string       `json:"name"`
	Phone             string       `json:"phone"`
	AlternatePhone    string       `json:"alternate_phone,omitempty"`
	Email             string       `json:"email,omitempty"`
	CustomerType      CustomerType `json:"customer_type"`
	GSTNumber         string       `json:"gst_number,omitempty"`
	PANNumber         string       `json:"pan_number,omitempty"`
	TaxPreference     string       `json:"tax_preference,omitempty"` // inclusive or exclusive
	CreditLimit       float64      `json:"credit_limit"`             // 0 = unlimited
	CurrentBalance    float64      `json:"current_balance"`          // positive = customer owes the shop
	PaymentTerms      PaymentTerms `json:"payment_terms"`
	CustomPaymentDays int          `json:"custom_payment_days,omitempty"`

	// Cumulative stats maintained by UpdateStats
	TotalPurchases    float64 `json:"total_purchases"`
	TotalPayments     float64 `json:"total_payments"`
	TotalTransactions int     `json:"total_transactions"`
	AverageOrderValue float64 `json:"average_order_value"`
	HighestBalance    float64 `json:"highest_balance"`
	OnTimePayments    int     `json:"on_time_payments"`
	LatePayments      int     `json:"late_payments"`

	IsActive  bool      `json:"is_active"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOverCreditLimit reports whether the balance exceeds the credit limit.
// A zero limit means unlimited credit and never trips.
func (c *Customer) IsOverCreditLimit() bool {
	return c.CreditLimit != 0 && c.CurrentBalance > c.CreditLimit
}

// AvailableCredit returns the remaining credit headroom. unlimited is true
// when the credit limit is zero, in which case amount is meaningless.
func (c *Customer) AvailableCredit() (amount float64, unlimited bool) {
	if c.CreditLimit == 0 {
		return 0, true
	}
	return math.Max(0, c.CreditLimit-c.CurrentBalance), false
}

// PaymentScore is a 0-100 reliability metric from on-time vs late payment
// history. A customer with no recorded payments scores 100.
func (c *Customer) PaymentScore() int {
	total := c.OnTimePayments + c.LatePayments
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(c.OnTimePayments) / float64(total)))
}

// UpdateStats records one credit or payment transaction of the given amount
// into the cumulative counters. CurrentBalance is adjusted by the caller
// before this runs; the highest-balance watermark is raised from it here.
func (c *Customer) UpdateStats(kind StatKind, amount float64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}

	switch kind {
	case StatKindCredit:
		c.TotalPurchases += amount
	case StatKindPayment:
		c.TotalPayments += amount
	default:
		return ErrUnknownStatKind
	}

	c.TotalTransactions++
	c.AverageOrderValue = c.TotalPurchases / float64(c.TotalTransactions)
	if c.CurrentBalance > c.HighestBalance {
		c.HighestBalance = c.CurrentBalance
	}
	return nil
}

// CustomerSummary is the credit/ledger view returned by the API
type CustomerSummary struct {
	Customer          *Customer `json:"customer"`
	AvailableCredit   float64   `json:"available_credit"`
	UnlimitedCredit   bool      `json:"unlimited_credit"`
	IsOverCreditLimit bool      `json:"is_over_credit_limit"`
	PaymentScore      int       `json:"payment_score"`
}

// NewCustomerSummary computes the derived credit view for API responses
func NewCustomerSummary(c *Customer) *CustomerSummary {
	available, unlimited := c.AvailableCredit()
	return &CustomerSummary{
		Customer:          c,
		AvailableCredit:   available,
		UnlimitedCredit:   unlimited,
		IsOverCreditLimit: c.IsOverCreditLimit(),
		PaymentScore:      c.PaymentScore(),
	}
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name              string       `json:"name"`
	Phone             string       `json:"phone"`
	AlternatePhone    string       `json:"alternate_phone"`
	Email             string       `json:"email"`
	CustomerType      CustomerType `json:"customer_type"`
	GSTNumber         string       `json:"gst_number"`
	PANNumber         string       `json:"pan_number"`
	TaxPreference     string       `json:"tax_preference"`
	CreditLimit       float64      `json:"credit_limit"`
	PaymentTerms      PaymentTerms `json:"payment_terms"`
	CustomPaymentDays int          `json:"custom_payment_days"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	Name              string       `json:"name"`
	Phone             string       `json:"phone"`
	AlternatePhone    string       `json:"alternate_phone"`
	Email             string       `json:"email"`
	CustomerType      CustomerType `json:"customer_type"`
	GSTNumber         string       `json:"gst_number"`
	PANNumber         string       `json:"pan_number"`
	TaxPreference     string       `json:"tax_preference"`
	CreditLimit       float64      `json:"credit_limit"`
	PaymentTerms      PaymentTerms `json:"payment_terms"`
	CustomPaymentDays int          `json:"custom_payment_days"`
}

// ValidCustomerType reports whether t is one of the known customer types
func ValidCustomerType(t CustomerType) bool {
	switch t {
	case CustomerTypeIndividual, CustomerTypeBusiness, CustomerTypeRetailer, CustomerTypeWholesaler:
		return true
	}
	return false
}

// ValidPaymentTerms reports whether t is one of the known payment terms
func ValidPaymentTerms(t PaymentTerms) bool {
	switch t {
	case PaymentTermsImmediate, PaymentTermsNet7, PaymentTermsNet15, PaymentTermsNet30,
		PaymentTermsNet45, PaymentTermsNet60, PaymentTermsCustom:
		return true
	}
	return false
}
