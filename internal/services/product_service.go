package services

import (
	"context"
	"errors"
	"time"

	"github.com/San7122/shopsmart-pro-sub001/internal/cache"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

type ProductService struct {
	Repo     *repositories.ProductRepository
	UserRepo *repositories.UserRepository
	Now      func() time.Time
}

func NewProductService(repo *repositories.ProductRepository, userRepo *repositories.UserRepository, now func() time.Time) *ProductService {
	return &ProductService{Repo: repo, UserRepo: userRepo, Now: now}
}

func validateProductRequest(name, unit string, costPrice, sellingPrice, gstRate float64) error {
	if name == "" {
		return errors.New("name is required")
	}
	if costPrice < 0 || sellingPrice < 0 {
		return errors.New("prices cannot be negative")
	}
	if unit != "" && !models.ValidUnits[unit] {
		return errors.New("invalid unit")
	}
	if !models.ValidGSTRates[gstRate] {
		return errors.New("invalid GST rate")
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, userID int, req *models.CreateProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req.Name, req.Unit, req.CostPrice, req.SellingPrice, req.GSTRate); err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}
	alertDays := req.ExpiryAlertDays
	if alertDays <= 0 {
		alertDays = 30
	}

	product := &models.Product{
		UserID:          userID,
		Name:            req.Name,
		SKU:             req.SKU,
		Barcode:         req.Barcode,
		Category:        req.Category,
		Brand:           req.Brand,
		CostPrice:       req.CostPrice,
		SellingPrice:    req.SellingPrice,
		MRP:             req.MRP,
		GSTRate:         req.GSTRate,
		HSNCode:         req.HSNCode,
		CurrentStock:    req.CurrentStock,
		Unit:            unit,
		MinStock:        req.MinStock,
		MaxStock:        req.MaxStock,
		HasExpiry:       req.HasExpiry,
		ExpiryAlertDays: alertDays,
		IsActive:        true,
	}
	product.Recalculate(s.Now())

	if err := s.Repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateStorefront(ctx, userID)
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, userID, id int) (*models.Product, error) {
	return s.Repo.Get(ctx, userID, id)
}

func (s *ProductService) ListProducts(ctx context.Context, userID int) ([]*models.Product, error) {
	return s.Repo.List(ctx, userID)
}

func (s *ProductService) UpdateProduct(ctx context.Context, userID, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req.Name, req.Unit, req.CostPrice, req.SellingPrice, req.GSTRate); err != nil {
		return nil, err
	}

	product, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.SKU = req.SKU
	product.Barcode = req.Barcode
	product.Category = req.Category
	product.Brand = req.Brand
	product.CostPrice = req.CostPrice
	product.SellingPrice = req.SellingPrice
	product.MRP = req.MRP
	product.GSTRate = req.GSTRate
	product.HSNCode = req.HSNCode
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	product.MinStock = req.MinStock
	product.MaxStock = req.MaxStock
	product.HasExpiry = req.HasExpiry
	if req.ExpiryAlertDays > 0 {
		product.ExpiryAlertDays = req.ExpiryAlertDays
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.Recalculate(s.Now())

	if err := s.Repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateStorefront(ctx, userID)
	return product, nil
}

func (s *ProductService) AdjustStock(ctx context.Context, userID, id int, req *models.AdjustStockRequest) (*models.Product, error) {
	product, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(req.Operation, req.Quantity); err != nil {
		return nil, err
	}
	product.Recalculate(s.Now())

	if err := s.Repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateStorefront(ctx, userID)
	return product, nil
}

func (s *ProductService) AddBatch(ctx context.Context, userID, id int, req *models.AddBatchRequest) (*models.Product, error) {
	if req.Quantity <= 0 {
		return nil, models.ErrNonPositiveAmount
	}
	if req.ExpiryDate.IsZero() {
		return nil, errors.New("expiry date is required")
	}

	product, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	product.Batches = append(product.Batches, models.Batch{
		BatchNumber:       req.BatchNumber,
		Quantity:          req.Quantity,
		ManufacturingDate: req.ManufacturingDate,
		PurchaseDate:      req.PurchaseDate,
		ExpiryDate:        req.ExpiryDate,
		PurchasePrice:     req.PurchasePrice,
		Supplier:          req.Supplier,
	})
	product.CurrentStock += req.Quantity
	product.HasExpiry = true
	product.UpdateBatchStatuses(s.Now())
	product.Recalculate(s.Now())

	if err := s.Repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateStorefront(ctx, userID)
	return product, nil
}

func (s *ProductService) GetExpiringProducts(ctx context.Context, userID, days int) ([]*models.Product, error) {
	if days <= 0 {
		days = 30
	}
	return s.Repo.GetExpiringProducts(ctx, userID, days)
}

func (s *ProductService) GetLowStockProducts(ctx context.Context, userID int) ([]*models.Product, error) {
	return s.Repo.GetLowStockProducts(ctx, userID)
}

// RefreshStatuses re-derives batch and product statuses against the current
// time and persists any rows that changed. Run daily: expiry states move on
// their own as days pass.
func (s *ProductService) RefreshStatuses(ctx context.Context, userID int) (int, error) {
	products, err := s.Repo.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.Now()
	changed := 0
	for _, p := range products {
		prevStock, prevExpiry := p.StockStatus, p.ExpiryStatus
		p.UpdateBatchStatuses(now)
		p.Recalculate(now)
		if p.StockStatus == prevStock && p.ExpiryStatus == prevExpiry {
			continue
		}
		if err := s.Repo.Update(ctx, p); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func (s *ProductService) invalidateStorefront(ctx context.Context, userID int) {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return
	}
	cache.InvalidateStorefront(ctx, user.ShopSlug)
}
