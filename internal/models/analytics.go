package models

import "time"

// Dashboard is the aggregate snapshot shown on the owner's home screen
type Dashboard struct {
	CustomerCount        int     `json:"customer_count"`
	TotalOutstanding     float64 `json:"total_outstanding"`
	ProductCount         int     `json:"product_count"`
	LowStockCount        int     `json:"low_stock_count"`
	ExpiringCount        int     `json:"expiring_count"`
	OverdueScheduleCount int     `json:"overdue_schedule_count"`
	OverdueOutstanding   float64 `json:"overdue_outstanding"`

	TodayCredit       float64 `json:"today_credit"`
	TodayPayments     float64 `json:"today_payments"`
	TodayTransactions int     `json:"today_transactions"`
	MonthCredit       float64 `json:"month_credit"`
	MonthPayments     float64 `json:"month_payments"`

	TopDebtors  []*CustomerSummary `json:"top_debtors"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// StorefrontProduct is the public view of a product: no cost price, no
// stock counts beyond availability
type StorefrontProduct struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	SellingPrice float64 `json:"selling_price"`
	MRP          float64 `json:"mrp,omitempty"`
	Unit         string  `json:"unit"`
	InStock      bool    `json:"in_stock"`
}

// Storefront is the public catalog page for a shop slug
type Storefront struct {
	ShopName  string              `json:"shop_name"`
	ShopSlug  string              `json:"shop_slug"`
	Phone     string              `json:"phone,omitempty"`
	Products  []StorefrontProduct `json:"products"`
	UpdatedAt time.Time           `json:"updated_at"`
}
