package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	appErrors "github.com/aureliefinejewels/storefront-api/internal/errors"
	"github.com/aureliefinejewels/storefront-api/internal/models"
	"github.com/aureliefinejewels/storefront-api/internal/repositories/mocks"
	service "github.com/aureliefinejewels/storefront-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCache is a map-backed cache.Cache for tests.
type memoryCache struct {
	entries map[string][]byte
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}

	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.entries[key] = data

	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)

	return nil
}

func (c *memoryCache) Close() error { return nil }

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, nil)

		mockRepo.On("CreateProduct", ctx, mock.MatchedBy(func(product *models.Product) bool {
			return product.Name == "Solitaire Ring" &&
				product.Status == models.ProductStatusActive &&
				product.PriceCents == 500000
		})).Return(nil).Once()

		// Act
		product, err := productService.CreateProduct(ctx, &models.CreateProductRequest{
			CategoryID:    1,
			Name:          "Solitaire Ring",
			Description:   "A classic solitaire.",
			PriceCents:    500000,
			StockQuantity: 10,
			SKU:           "RING-001",
			Gender:        models.GenderWomen,
		})

		// Assert
		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, models.ProductStatusActive, product.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Sanitizes Description", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, nil)

		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		// Act
		product, err := productService.CreateProduct(ctx, &models.CreateProductRequest{
			CategoryID:    1,
			Name:          "Solitaire Ring",
			Description:   `A classic solitaire.<script>alert("x")</script>`,
			PriceCents:    500000,
			StockQuantity: 10,
			SKU:           "RING-001",
			Gender:        models.GenderWomen,
		})

		// Assert
		assert.NoError(t, err)
		assert.NotContains(t, product.Description, "<script>")
		assert.Contains(t, product.Description, "A classic solitaire.")
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, nil)

		dbError := errors.New("database connection failed")
		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(dbError).Once()

		// Act
		product, err := productService.CreateProduct(ctx, &models.CreateProductRequest{
			CategoryID: 1,
			Name:       "Solitaire Ring",
			PriceCents: 500000,
			SKU:        "RING-001",
			Gender:     models.GenderWomen,
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, dbError)
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()

	stored := &models.Product{
		ID:         1,
		Name:       "Solitaire Ring",
		PriceCents: 500000,
		Status:     models.ProductStatusActive,
	}

	t.Run("Cache Miss Falls Through To Database", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productCache := newMemoryCache()
		productService := service.NewProductService(mockRepo, productCache)

		mockRepo.On("GetProductByID", ctx, int64(1)).Return(stored, nil).Once()

		// Act
		product, err := productService.GetProductByID(ctx, 1)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, stored.Name, product.Name)
		assert.NotEmpty(t, productCache.entries)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Cache Hit Skips Database", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productCache := newMemoryCache()
		productService := service.NewProductService(mockRepo, productCache)

		mockRepo.On("GetProductByID", ctx, int64(1)).Return(stored, nil).Once()

		// Warm the cache, then read again.
		_, err := productService.GetProductByID(ctx, 1)
		require.NoError(t, err)

		// Act
		product, err := productService.GetProductByID(ctx, 1)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, stored.Name, product.Name)
		mockRepo.AssertNumberOfCalls(t, "GetProductByID", 1)
	})

	t.Run("Cache Failure Degrades To Database", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productCache := newMemoryCache()
		productCache.getErr = errors.New("connection refused")
		productService := service.NewProductService(mockRepo, productCache)

		mockRepo.On("GetProductByID", ctx, int64(1)).Return(stored, nil).Once()

		// Act
		product, err := productService.GetProductByID(ctx, 1)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, stored.Name, product.Name)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, nil)

		mockRepo.On("GetProductByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		// Act
		product, err := productService.GetProductByID(ctx, 99)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, product)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Partial Update Invalidates Cache", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productCache := newMemoryCache()
		productService := service.NewProductService(mockRepo, productCache)

		stored := &models.Product{
			ID:         1,
			Name:       "Solitaire Ring",
			PriceCents: 500000,
			Status:     models.ProductStatusActive,
		}

		mockRepo.On("GetProductByID", ctx, int64(1)).Return(stored, nil) // warm + update path
		mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(product *models.Product) bool {
			return product.PriceCents == 550000 && product.Name == "Solitaire Ring"
		})).Return(nil).Once()

		// Warm the cache so invalidation has something to clear.
		_, err := productService.GetProductByID(ctx, 1)
		require.NoError(t, err)
		require.NotEmpty(t, productCache.entries)

		newPrice := int64(550000)

		// Act
		product, err := productService.UpdateProduct(ctx, 1, &models.UpdateProductRequest{
			PriceCents: &newPrice,
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, int64(550000), product.PriceCents)
		assert.Empty(t, productCache.entries)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, nil)

		mockRepo.On("GetProductByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		newPrice := int64(550000)

		// Act
		product, err := productService.UpdateProduct(ctx, 99, &models.UpdateProductRequest{
			PriceCents: &newPrice,
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, nil)

		mockRepo.On("ListProducts", ctx, 1, 10).
			Return([]*models.Product{{ID: 1, Name: "Solitaire Ring"}}, 1, nil).Once()

		// Act
		products, total, err := productService.ListProducts(ctx, 1, 10)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, 1, total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, nil)

		dbError := errors.New("database connection failed")
		mockRepo.On("ListProducts", ctx, 1, 10).Return(nil, 0, dbError).Once()

		// Act
		products, total, err := productService.ListProducts(ctx, 1, 10)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, products)
		assert.Zero(t, total)
		assert.ErrorIs(t, err, dbError)
	})
}
