package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aureliefinejewels/storefront-api/internal/errors"
	"github.com/aureliefinejewels/storefront-api/internal/models"
	"github.com/aureliefinejewels/storefront-api/internal/pricing"
	repository "github.com/aureliefinejewels/storefront-api/internal/repositories"
	"github.com/aureliefinejewels/storefront-api/pkg/email"
	"github.com/aureliefinejewels/storefront-api/pkg/upi"
	"github.com/google/uuid"
)

// CheckoutService runs the cart → pricing → payment link pipeline and turns
// the result into a persisted order.
type CheckoutService struct {
	cartService *CartService
	engine      *pricing.Engine
	upiBuilder  *upi.Builder
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	emailSvc    email.Service
}

func NewCheckoutService(
	cartService *CartService,
	engine *pricing.Engine,
	upiBuilder *upi.Builder,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
) *CheckoutService {
	return &CheckoutService{
		cartService: cartService,
		engine:      engine,
		upiBuilder:  upiBuilder,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

// Quote prices the current cart with an optional coupon. Purely derived
// state: nothing is written, and an invalid coupon degrades to "no discount"
// with an informational message rather than an error.
func (s *CheckoutService) Quote(ctx context.Context, sessionID string, couponCode string) models.PricingQuote {
	return s.engine.Quote(s.cartService.Items(ctx, sessionID), couponCode)
}

// Checkout creates an order from the cart: stock check, pricing, per-line
// discounted totals, UPI deep link for the payable amount. The cart is
// cleared only after the order is persisted.
func (s *CheckoutService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	sessionID := customerID.String()

	items := s.cartService.Items(ctx, sessionID)
	if len(items) == 0 {
		return nil, errors.BadRequestError("Cannot create order with empty cart")
	}

	// Check availability before writing anything.
	for _, item := range items {

		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, errors.NotFoundError(fmt.Sprintf("Product not found: %d", item.ProductID)).WithError(err)
		}

		if product.StockQuantity < item.Quantity {
			return nil, errors.OutOfStockError(fmt.Sprintf("Insufficient stock for product: %d", item.ProductID))
		}
	}

	quote := s.engine.Quote(items, req.CouponCode)

	payURI, err := s.upiBuilder.PayURI(quote.TotalCents)
	if err != nil {
		// Only reachable if pricing produced a negative total, which it
		// clamps against; treat as an internal invariant failure.
		return nil, errors.InternalError("Failed to build payment link").WithError(err)
	}

	couponCode := ""
	if quote.CouponApplied {
		couponCode = s.engine.NormalizedCode()
	}

	order := &models.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		Status:          models.OrderStatusPending,
		SubtotalCents:   quote.SubtotalCents,
		DiscountCents:   quote.DiscountCents,
		TotalCents:      quote.TotalCents,
		CouponCode:      couponCode,
		PaymentStatus:   models.PaymentStatusPending,
		UpiURI:          payURI,
		ShippingAddress: &req.ShippingAddress,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: s.engine.DiscountedLineTotalCents(item.UnitPriceCents, item.Quantity, req.CouponCode),
			CreatedAt:      time.Now(),
		})
	}

	// CreateOrder takes the stock in the same transaction as the order rows,
	// so a conflicting checkout leaves neither an order nor a decrement.
	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		if stderrors.Is(err, repository.ErrInsufficientStock) {
			return nil, errors.OutOfStockError("Insufficient stock for one of the items").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	// Order placed: the cart's job is done.
	s.cartService.ClearCart(ctx, sessionID)

	s.sendConfirmation(ctx, customerID, order)

	return &models.CheckoutResponse{
		Order:  order,
		Quote:  quote,
		UpiURI: payURI,
	}, nil
}

// sendConfirmation is best effort: a mail failure never affects the order.
func (s *CheckoutService) sendConfirmation(ctx context.Context, customerID uuid.UUID, order *models.Order) {

	if s.emailSvc == nil {
		return
	}

	user, err := s.userRepo.GetUserByID(ctx, customerID)
	if err != nil {
		slog.Warn("Failed to look up customer for order confirmation",
			slog.String("orderId", order.ID.String()),
			slog.String("error", err.Error()))

		return
	}

	msg := &email.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Your Aurelie order %s", order.ID),
		Content: fmt.Sprintf("Thank you for your order. Amount payable: %s %s.",
			upi.FormatAmount(order.TotalCents), "INR"),
	}

	if err := s.emailSvc.Send(ctx, msg); err != nil {
		slog.Warn("Failed to send order confirmation email",
			slog.String("orderId", order.ID.String()),
			slog.String("error", err.Error()))
	}
}
