package service

import (
	"context"

	"github.com/aureliefinejewels/storefront-api/internal/errors"
	"github.com/aureliefinejewels/storefront-api/internal/models"
	repository "github.com/aureliefinejewels/storefront-api/internal/repositories"
	"github.com/google/uuid"
)

type OrderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	return order, nil
}

func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page int, size int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	orders, total, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus moves an order along its lifecycle, rejecting any
// transition the status machine does not allow.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, errors.BadRequestError("Invalid status transition").
			WithDetail(string(order.Status) + " -> " + string(status))
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = status

	return order, nil
}

// MarkPaid records a successful payment against an order.
func (s *OrderService) MarkPaid(ctx context.Context, id uuid.UUID) error {

	if err := s.orderRepo.UpdatePaymentStatus(ctx, id, models.PaymentStatusPaid); err != nil {
		return errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	return nil
}
