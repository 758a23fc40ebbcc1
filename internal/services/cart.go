package service

import (
	"context"

	"github.com/aureliefinejewels/storefront-api/internal/cart"
	"github.com/aureliefinejewels/storefront-api/internal/errors"
	"github.com/aureliefinejewels/storefront-api/internal/models"
	repository "github.com/aureliefinejewels/storefront-api/internal/repositories"
)

// CartService mediates between the HTTP layer and the per-session cart
// stores. Product identity and unit price always come from the catalog, never
// from the client.
type CartService struct {
	carts       *cart.Manager
	productRepo repository.ProductRepository
}

func NewCartService(carts *cart.Manager, productRepo repository.ProductRepository) *CartService {
	return &CartService{carts: carts, productRepo: productRepo}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) *models.CartResponse {

	store := s.carts.Get(ctx, sessionID)

	return &models.CartResponse{
		Items:           store.Items(),
		TotalItems:      store.TotalItems(),
		TotalPriceCents: store.TotalPriceCents(),
	}
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartResponse, error) {

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if product.Status != models.ProductStatusActive {
		return nil, errors.BadRequestError("Product is not available")
	}

	if product.StockQuantity < req.Quantity {
		return nil, errors.OutOfStockError("Insufficient stock for product")
	}

	store := s.carts.Get(ctx, sessionID)
	store.AddItem(product, req.Quantity)
	s.carts.Persist(ctx, sessionID)

	return s.GetCart(ctx, sessionID), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {

	store := s.carts.Get(ctx, sessionID)
	store.UpdateQuantity(req.ProductID, req.Quantity)
	s.carts.Persist(ctx, sessionID)

	return s.GetCart(ctx, sessionID), nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) *models.CartResponse {

	store := s.carts.Get(ctx, sessionID)
	store.RemoveItem(productID)
	s.carts.Persist(ctx, sessionID)

	return s.GetCart(ctx, sessionID)
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) {
	s.carts.Drop(ctx, sessionID)
}

// Items exposes the raw cart lines for the checkout pipeline.
func (s *CartService) Items(ctx context.Context, sessionID string) []models.CartItem {
	return s.carts.Get(ctx, sessionID).Items()
}
