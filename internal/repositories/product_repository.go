package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
)

const productColumns = `id, user_id, name, COALESCE(sku, ''), barcode, category, brand,
    cost_price, selling_price, mrp, gst_rate, hsn_code, current_stock, unit,
    min_stock, max_stock, has_expiry, expiry_alert_days, batches,
    stock_status, expiry_status, nearest_expiry, is_active, version, created_at, updated_at`

type ProductRepository struct {
	DB Querier
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

// WithTx returns a copy bound to the given transaction
func (r *ProductRepository) WithTx(q Querier) *ProductRepository {
	return &ProductRepository{DB: q}
}

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.SKU, &p.Barcode, &p.Category, &p.Brand,
		&p.CostPrice, &p.SellingPrice, &p.MRP, &p.GSTRate, &p.HSNCode, &p.CurrentStock,
		&p.Unit, &p.MinStock, &p.MaxStock, &p.HasExpiry, &p.ExpiryAlertDays, &p.Batches,
		&p.StockStatus, &p.ExpiryStatus, &p.NearestExpiry, &p.IsActive, &p.Version,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	var sku *string
	if p.SKU != "" {
		sku = &p.SKU
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(user_id, name, sku, barcode, category, brand, cost_price,
             selling_price, mrp, gst_rate, hsn_code, current_stock, unit, min_stock,
             max_stock, has_expiry, expiry_alert_days, batches, stock_status,
             expiry_status, nearest_expiry)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
         RETURNING id, version, created_at, updated_at`,
		p.UserID, p.Name, sku, p.Barcode, p.Category, p.Brand, p.CostPrice,
		p.SellingPrice, p.MRP, p.GSTRate, p.HSNCode, p.CurrentStock, p.Unit,
		p.MinStock, p.MaxStock, p.HasExpiry, p.ExpiryAlertDays, p.Batches,
		p.StockStatus, p.ExpiryStatus, p.NearestExpiry,
	).Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, userID, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1 AND user_id=$2`, id, userID)
	return scanProduct(row)
}

func (r *ProductRepository) List(ctx context.Context, userID int) ([]*models.Product, error) {
	return r.queryMany(ctx,
		`SELECT `+productColumns+` FROM products
         WHERE user_id=$1 AND is_active=TRUE ORDER BY name ASC`, userID)
}

// ListPublic returns the active in-stock products for the storefront
func (r *ProductRepository) ListPublic(ctx context.Context, userID int) ([]*models.Product, error) {
	return r.queryMany(ctx,
		`SELECT `+productColumns+` FROM products
         WHERE user_id=$1 AND is_active=TRUE AND current_stock > 0
         ORDER BY name ASC`, userID)
}

// Update writes the full product row guarded by the version read earlier
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	var sku *string
	if p.SKU != "" {
		sku = &p.SKU
	}
	tag, err := r.DB.Exec(ctx,
		`UPDATE products SET name=$1, sku=$2, barcode=$3, category=$4, brand=$5,
             cost_price=$6, selling_price=$7, mrp=$8, gst_rate=$9, hsn_code=$10,
             current_stock=$11, unit=$12, min_stock=$13, max_stock=$14, has_expiry=$15,
             expiry_alert_days=$16, batches=$17, stock_status=$18, expiry_status=$19,
             nearest_expiry=$20, is_active=$21, version=version+1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$22 AND user_id=$23 AND version=$24`,
		p.Name, sku, p.Barcode, p.Category, p.Brand, p.CostPrice, p.SellingPrice,
		p.MRP, p.GSTRate, p.HSNCode, p.CurrentStock, p.Unit, p.MinStock, p.MaxStock,
		p.HasExpiry, p.ExpiryAlertDays, p.Batches, p.StockStatus, p.ExpiryStatus,
		p.NearestExpiry, p.IsActive, p.ID, p.UserID, p.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrVersionConflict
	}
	p.Version++
	return nil
}

// GetExpiringProducts returns products whose nearest expiry falls within
// the given number of days, soonest first
func (r *ProductRepository) GetExpiringProducts(ctx context.Context, userID, days int) ([]*models.Product, error) {
	return r.queryMany(ctx,
		`SELECT `+productColumns+` FROM products
         WHERE user_id=$1 AND is_active=TRUE AND nearest_expiry IS NOT NULL
           AND nearest_expiry <= NOW() + ($2 || ' days')::interval
         ORDER BY nearest_expiry ASC`, userID, days)
}

// GetLowStockProducts returns products at or below their min stock,
// lowest stock first
func (r *ProductRepository) GetLowStockProducts(ctx context.Context, userID int) ([]*models.Product, error) {
	return r.queryMany(ctx,
		`SELECT `+productColumns+` FROM products
         WHERE user_id=$1 AND is_active=TRUE AND current_stock <= min_stock
         ORDER BY current_stock ASC`, userID)
}

// Counts returns product totals for the dashboard
func (r *ProductRepository) Counts(ctx context.Context, userID int) (total, lowStock, expiringSoon int, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(*),
                COUNT(*) FILTER (WHERE stock_status IN ('low_stock', 'out_of_stock')),
                COUNT(*) FILTER (WHERE expiry_status IN ('expiring_soon', 'has_expired'))
         FROM products WHERE user_id=$1 AND is_active=TRUE`, userID,
	).Scan(&total, &lowStock, &expiringSoon)
	return total, lowStock, expiringSoon, err
}

func (r *ProductRepository) queryMany(ctx context.Context, sql string, args ...any) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
