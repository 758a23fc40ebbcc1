package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aureliefinejewels/storefront-api/internal/cache"
	"github.com/aureliefinejewels/storefront-api/internal/errors"
	"github.com/aureliefinejewels/storefront-api/internal/models"
	repository "github.com/aureliefinejewels/storefront-api/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
}

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	sanitizer *bluemonday.Policy
}

// NewProductService wires the catalog. cache may be nil, in which case every
// read goes to the database.
func NewProductService(repo repository.ProductRepository, productCache cache.Cache) ProductService {
	return &productService{
		repo:      repo,
		cache:     productCache,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		// Descriptions are admin-entered rich text shown to customers.
		Description:   s.sanitizer.Sanitize(req.Description),
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
		SKU:           req.SKU,
		Gender:        req.Gender,
		Status:        models.ProductStatusActive,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, fmt.Sprintf("%d", id))

	if s.cache != nil {

		var cached models.Product

		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			slog.Warn("Product cache read failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		} else if found {
			return &cached, nil
		}
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, product, 0); err != nil {
			slog.Warn("Product cache write failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		}
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.PriceCents != nil {
		product.PriceCents = *req.PriceCents
	}

	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if req.Gender != nil {
		product.Gender = *req.Gender
	}

	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	if s.cache != nil {

		cacheKey := cache.Key(cache.ProductKeyPrefix, fmt.Sprintf("%d", id))

		if err := s.cache.Delete(ctx, cacheKey); err != nil {
			slog.Warn("Product cache invalidation failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		}
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}
