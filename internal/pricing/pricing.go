// Package pricing computes money amounts for the checkout pipeline. Every
// amount is an integer count of paise; nothing here converts to rupees or
// touches floating point, so results are exact and deterministic.
package pricing

import (
	"strings"

	"github.com/aureliefinejewels/storefront-api/internal/models"
)

// Rule is the single recognized coupon: a code and a whole-number percentage
// taken off the cart subtotal.
type Rule struct {
	Code       string
	PercentOff int64
}

type Engine struct {
	rule Rule
}

func NewEngine(rule Rule) *Engine {
	return &Engine{rule: rule}
}

// NormalizedCode returns the canonical spelling of the configured coupon,
// for persisting on orders regardless of how the customer typed it.
func (e *Engine) NormalizedCode() string {
	return e.rule.Code
}

// SubtotalCents sums unit price × quantity across the cart. An empty cart
// yields 0.
func SubtotalCents(items []models.CartItem) int64 {

	var subtotal int64

	for _, item := range items {
		subtotal += item.UnitPriceCents * item.Quantity
	}

	return subtotal
}

// ValidateCoupon reports whether code matches the configured coupon after
// trimming and case folding. Empty or unknown input is simply "no coupon",
// never an error.
func (e *Engine) ValidateCoupon(code string) bool {

	normalized := strings.TrimSpace(code)
	if normalized == "" {
		return false
	}

	return strings.EqualFold(normalized, e.rule.Code)
}

// DiscountCents returns the coupon discount on a subtotal, rounded half-up
// to the nearest paisa. An invalid code yields 0.
func (e *Engine) DiscountCents(subtotalCents int64, code string) int64 {

	if !e.ValidateCoupon(code) {
		return 0
	}

	if subtotalCents <= 0 {
		return 0
	}

	// Round half-up: subtotal × percent / 100 with the remainder carried
	// into the +50 before the integer division.
	return (subtotalCents*e.rule.PercentOff + 50) / 100
}

// FinalAmountCents clamps at zero so a discount can never drive the payable
// amount negative.
func FinalAmountCents(subtotalCents, discountCents int64) int64 {

	final := subtotalCents - discountCents
	if final < 0 {
		return 0
	}

	return final
}

// DiscountedLineTotalCents applies the coupon to a single line independently.
// Summing these across a cart agrees with the cart-level final amount to
// within one paisa per line of rounding.
func (e *Engine) DiscountedLineTotalCents(unitPriceCents, quantity int64, code string) int64 {

	lineTotal := unitPriceCents * quantity

	return FinalAmountCents(lineTotal, e.DiscountCents(lineTotal, code))
}

// Quote runs the full pipeline for a cart: subtotal, discount, payable total.
func (e *Engine) Quote(items []models.CartItem, code string) models.PricingQuote {

	subtotal := SubtotalCents(items)
	discount := e.DiscountCents(subtotal, code)

	quote := models.PricingQuote{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TotalCents:    FinalAmountCents(subtotal, discount),
		CouponApplied: discount > 0,
	}

	if strings.TrimSpace(code) != "" && !e.ValidateCoupon(code) {
		quote.CouponMessage = "invalid coupon code"
	}

	return quote
}
