package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/San7122/shopsmart-pro-sub001/internal/cache"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

var ErrShopNotFound = errors.New("shop not found")

type StorefrontService struct {
	UserRepo    *repositories.UserRepository
	ProductRepo *repositories.ProductRepository
	Now         func() time.Time
}

func NewStorefrontService(userRepo *repositories.UserRepository, productRepo *repositories.ProductRepository, now func() time.Time) *StorefrontService {
	return &StorefrontService{UserRepo: userRepo, ProductRepo: productRepo, Now: now}
}

// GetStorefront returns the public catalog for a shop slug. The page is
// unauthenticated and read-heavy, so it is served from Redis when cached.
func (s *StorefrontService) GetStorefront(ctx context.Context, slug string) (*models.Storefront, error) {
	if data, ok := cache.GetCachedStorefront(ctx, slug); ok {
		var sf models.Storefront
		if err := json.Unmarshal(data, &sf); err == nil {
			return &sf, nil
		}
	}

	user, err := s.UserRepo.GetBySlug(ctx, slug)
	if err != nil || !user.IsActive {
		return nil, ErrShopNotFound
	}

	products, err := s.ProductRepo.ListPublic(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	sf := &models.Storefront{
		ShopName:  user.ShopName,
		ShopSlug:  user.ShopSlug,
		Phone:     user.Phone,
		Products:  make([]models.StorefrontProduct, 0, len(products)),
		UpdatedAt: s.Now(),
	}
	for _, p := range products {
		sf.Products = append(sf.Products, models.StorefrontProduct{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			Brand:        p.Brand,
			SellingPrice: p.SellingPrice,
			MRP:          p.MRP,
			Unit:         p.Unit,
			InStock:      p.CurrentStock > 0,
		})
	}

	if data, err := json.Marshal(sf); err == nil {
		cache.CacheStorefront(ctx, slug, data)
	}

	return sf, nil
}
