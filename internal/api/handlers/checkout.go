package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aureliefinejewels/storefront-api/internal/api/middleware"
	"github.com/aureliefinejewels/storefront-api/internal/errors"
	"github.com/aureliefinejewels/storefront-api/internal/models"
	service "github.com/aureliefinejewels/storefront-api/internal/services"
	"github.com/aureliefinejewels/storefront-api/internal/utils"
	"github.com/aureliefinejewels/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

// Quote prices the current cart with an optional coupon code without
// creating anything. The storefront calls this on every coupon input change.
func (h *CheckoutHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		couponCode := r.URL.Query().Get("coupon")

		quote := h.checkoutService.Quote(r.Context(), claims.UserID.String(), couponCode)

		response.Success(w, http.StatusOK, quote)
	}
}

// Checkout turns the cart into a pending order and returns the UPI deep link
// for the payable amount.
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.checkoutService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Checkout failed",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Order placed",
			slog.String("orderId", result.Order.ID.String()),
			slog.String("userId", claims.UserID.String()),
			slog.Int64("totalCents", result.Order.TotalCents))
		response.Success(w, http.StatusCreated, result)
	}
}
