package models

import "time"

// StockStatus is derived from current stock vs the min threshold
type StockStatus string

const (
	StockStatusIn  StockStatus = "in_stock"
	StockStatusLow StockStatus = "low_stock"
	StockStatusOut StockStatus = "out_of_stock"
)

// ExpiryStatus is derived from the nearest qualifying batch expiry
type ExpiryStatus string

const (
	ExpiryStatusNone    ExpiryStatus = "no_expiry"
	ExpiryStatusFresh   ExpiryStatus = "fresh"
	ExpiryStatusSoon    ExpiryStatus = "expiring_soon"
	ExpiryStatusExpired ExpiryStatus = "has_expired"
)

// BatchStatus is the per-batch lifecycle state
type BatchStatus string

const (
	BatchStatusFresh   BatchStatus = "fresh"
	BatchStatusSoon    BatchStatus = "expiring_soon"
	BatchStatusExpired BatchStatus = "expired"
	BatchStatusSoldOut BatchStatus = "sold_out"
)

// StockAdjustment is the operation applied by AdjustStock
type StockAdjustment string

const (
	StockAdjustAdd    StockAdjustment = "add"
	StockAdjustRemove StockAdjustment = "remove"
	StockAdjustSet    StockAdjustment = "set"
)

// ValidGSTRates are the GST slabs a product can carry
var ValidGSTRates = map[float64]bool{0: true, 5: true, 12: true, 18: true, 28: true}

// ValidUnits are the accepted measurement units
var ValidUnits = map[string]bool{
	"pcs": true, "kg": true, "g": true, "l": true, "ml": true,
	"m": true, "box": true, "dozen": true, "pack": true, "bag": true,
}

// Batch is one tracked lot of a product with its own expiry and quantity,
// used for FEFO-style expiry management. Stored as a JSONB document.
type Batch struct {
	BatchNumber       string      `json:"batch_number"`
	Quantity          float64     `json:"quantity"`
	ManufacturingDate *time.Time  `json:"manufacturing_date,omitempty"`
	PurchaseDate      *time.Time  `json:"purchase_date,omitempty"`
	ExpiryDate        time.Time   `json:"expiry_date"`
	PurchasePrice     float64     `json:"purchase_price"`
	Supplier          string      `json:"supplier,omitempty"`
	Status            BatchStatus `json:"status"`
}

// Product holds identity, pricing, stock level and optional batch/expiry
// tracking for one product of one shop owner.
type Product struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	Name     string `json:"name"`
	SKU      string `json:"sku,omitempty"` // globally unique when present
	Barcode  string `json:"barcode,omitempty"`
	Category string `json:"category,omitempty"`
	Brand    string `json:"brand,omitempty"`

	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	MRP          float64 `json:"mrp,omitempty"`
	GSTRate      float64 `json:"gst_rate"`
	HSNCode      string  `json:"hsn_code,omitempty"`

	CurrentStock float64 `json:"current_stock"`
	Unit         string  `json:"unit"`
	MinStock     float64 `json:"min_stock"`
	MaxStock     float64 `json:"max_stock,omitempty"`

	HasExpiry       bool    `json:"has_expiry"`
	ExpiryAlertDays int     `json:"expiry_alert_days"`
	Batches         []Batch `json:"batches,omitempty"`

	// Derived, recomputed by Recalculate before every save
	StockStatus   StockStatus  `json:"stock_status"`
	ExpiryStatus  ExpiryStatus `json:"expiry_status"`
	NearestExpiry *time.Time   `json:"nearest_expiry,omitempty"`

	IsActive  bool      `json:"is_active"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// daysUntil counts whole days from now to t; negative when t is past
func daysUntil(now, t time.Time) int {
	return int(t.Sub(now).Hours() / 24)
}

// Recalculate recomputes the derived stock and expiry fields against the
// given clock. It is a pure function of the stored fields and now, so
// saving twice with unchanged fields yields identical derived state.
func (p *Product) Recalculate(now time.Time) {
	switch {
	case p.CurrentStock <= 0:
		p.StockStatus = StockStatusOut
	case p.CurrentStock <= p.MinStock:
		p.StockStatus = StockStatusLow
	default:
		p.StockStatus = StockStatusIn
	}

	if !p.HasExpiry {
		p.ExpiryStatus = ExpiryStatusNone
		p.NearestExpiry = nil
		return
	}

	// Nearest expiry over batches that still hold stock and are not expired.
	// When none qualify the status resets to no_expiry rather than keeping
	// the last computed value, so a stale date is never reported.
	var nearest *time.Time
	for i := range p.Batches {
		b := &p.Batches[i]
		if b.Quantity <= 0 || b.Status == BatchStatusExpired {
			continue
		}
		if nearest == nil || b.ExpiryDate.Before(*nearest) {
			exp := b.ExpiryDate
			nearest = &exp
		}
	}

	if nearest == nil {
		p.ExpiryStatus = ExpiryStatusNone
		p.NearestExpiry = nil
		return
	}

	p.NearestExpiry = nearest
	switch {
	case nearest.Before(now):
		p.ExpiryStatus = ExpiryStatusExpired
	case daysUntil(now, *nearest) <= p.ExpiryAlertDays:
		p.ExpiryStatus = ExpiryStatusSoon
	default:
		p.ExpiryStatus = ExpiryStatusFresh
	}
}

// UpdateBatchStatuses refreshes every batch status against the given clock
// using the same thresholds as the product-level expiry status. It is not
// invoked automatically on save; callers run it explicitly.
func (p *Product) UpdateBatchStatuses(now time.Time) {
	for i := range p.Batches {
		b := &p.Batches[i]
		switch {
		case b.Quantity <= 0:
			b.Status = BatchStatusSoldOut
		case b.ExpiryDate.Before(now):
			b.Status = BatchStatusExpired
		case daysUntil(now, b.ExpiryDate) <= p.ExpiryAlertDays:
			b.Status = BatchStatusSoon
		default:
			b.Status = BatchStatusFresh
		}
	}
}

// AdjustStock applies an add/remove/set operation. Removing more than the
// current stock or setting a negative level is a domain error.
func (p *Product) AdjustStock(op StockAdjustment, quantity float64) error {
	if quantity < 0 {
		return ErrNegativeAmount
	}

	switch op {
	case StockAdjustAdd:
		p.CurrentStock += quantity
	case StockAdjustRemove:
		if quantity > p.CurrentStock {
			return ErrInsufficientStock
		}
		p.CurrentStock -= quantity
	case StockAdjustSet:
		p.CurrentStock = quantity
	default:
		return ErrInvalidAdjustment
	}
	return nil
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name            string  `json:"name"`
	SKU             string  `json:"sku"`
	Barcode         string  `json:"barcode"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	CostPrice       float64 `json:"cost_price"`
	SellingPrice    float64 `json:"selling_price"`
	MRP             float64 `json:"mrp"`
	GSTRate         float64 `json:"gst_rate"`
	HSNCode         string  `json:"hsn_code"`
	CurrentStock    float64 `json:"current_stock"`
	Unit            string  `json:"unit"`
	MinStock        float64 `json:"min_stock"`
	MaxStock        float64 `json:"max_stock"`
	HasExpiry       bool    `json:"has_expiry"`
	ExpiryAlertDays int     `json:"expiry_alert_days"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name            string  `json:"name"`
	SKU             string  `json:"sku"`
	Barcode         string  `json:"barcode"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	CostPrice       float64 `json:"cost_price"`
	SellingPrice    float64 `json:"selling_price"`
	MRP             float64 `json:"mrp"`
	GSTRate         float64 `json:"gst_rate"`
	HSNCode         string  `json:"hsn_code"`
	Unit            string  `json:"unit"`
	MinStock        float64 `json:"min_stock"`
	MaxStock        float64 `json:"max_stock"`
	HasExpiry       bool    `json:"has_expiry"`
	ExpiryAlertDays int     `json:"expiry_alert_days"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// AdjustStockRequest represents the request body for a stock adjustment
type AdjustStockRequest struct {
	Operation StockAdjustment `json:"operation"` // add, remove or set
	Quantity  float64         `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
}

// AddBatchRequest represents the request body for appending a batch
type AddBatchRequest struct {
	BatchNumber       string     `json:"batch_number"`
	Quantity          float64    `json:"quantity"`
	ManufacturingDate *time.Time `json:"manufacturing_date"`
	PurchaseDate      *time.Time `json:"purchase_date"`
	ExpiryDate        time.Time  `json:"expiry_date"`
	PurchasePrice     float64    `json:"purchase_price"`
	Supplier          string     `json:"supplier"`
}
