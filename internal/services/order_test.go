package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aureliefinejewels/storefront-api/internal/errors"
	"github.com/aureliefinejewels/storefront-api/internal/models"
	"github.com/aureliefinejewels/storefront-api/internal/repositories/mocks"
	service "github.com/aureliefinejewels/storefront-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_GetOrderByID(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		existing := &models.Order{ID: orderID, Status: models.OrderStatusPending}
		mockRepo.On("GetOrderByID", ctx, orderID).Return(existing, nil).Once()

		// Act
		order, err := orderService.GetOrderByID(ctx, orderID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("GetOrderByID", ctx, orderID).Return(nil, sql.ErrNoRows).Once()

		// Act
		order, err := orderService.GetOrderByID(ctx, orderID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestOrderService_ListOrdersByCustomer(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("ListOrdersByCustomer", ctx, customerID, 2, 10).
			Return([]models.Order{{ID: uuid.New()}}, 11, nil).Once()

		// Act
		orders, total, err := orderService.ListOrdersByCustomer(ctx, customerID, 2, 10)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, 11, total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Clamps Page And Size", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("ListOrdersByCustomer", ctx, customerID, 1, 10).
			Return([]models.Order{}, 0, nil).Once()

		// Act
		_, _, err := orderService.ListOrdersByCustomer(ctx, customerID, 0, 500)

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		dbError := errors.New("database connection failed")
		mockRepo.On("ListOrdersByCustomer", ctx, customerID, 1, 10).
			Return(nil, 0, dbError).Once()

		// Act
		orders, total, err := orderService.ListOrdersByCustomer(ctx, customerID, 1, 10)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, orders)
		assert.Zero(t, total)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("Success - Pending To Confirmed", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("GetOrderByID", ctx, orderID).
			Return(&models.Order{ID: orderID, Status: models.OrderStatusPending}, nil).Once()
		mockRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusConfirmed).Return(nil).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusConfirmed)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusConfirmed, order.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Cancel Before Shipment", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("GetOrderByID", ctx, orderID).
			Return(&models.Order{ID: orderID, Status: models.OrderStatusConfirmed}, nil).Once()
		mockRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusCancelled).Return(nil).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, order.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Cancel After Shipment", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("GetOrderByID", ctx, orderID).
			Return(&models.Order{ID: orderID, Status: models.OrderStatusShipped}, nil).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Skipping A Step", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("GetOrderByID", ctx, orderID).
			Return(&models.Order{ID: orderID, Status: models.OrderStatusPending}, nil).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusDelivered)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)
		mockRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("GetOrderByID", ctx, orderID).Return(nil, sql.ErrNoRows).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusConfirmed)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestOrderService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		mockRepo.On("UpdatePaymentStatus", ctx, orderID, models.PaymentStatusPaid).Return(nil).Once()

		// Act
		err := orderService.MarkPaid(ctx, orderID)

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.OrderRepository)
		orderService := service.NewOrderService(mockRepo)

		dbError := errors.New("database connection failed")
		mockRepo.On("UpdatePaymentStatus", ctx, orderID, models.PaymentStatusPaid).Return(dbError).Once()

		// Act
		err := orderService.MarkPaid(ctx, orderID)

		// Assert
		assert.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}
