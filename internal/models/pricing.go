package models

// PricingQuote is derived from the cart plus an optional coupon code. It is
// recomputed on every read and never persisted.
type PricingQuote struct {
	SubtotalCents int64  `json:"subtotal_cents"`
	DiscountCents int64  `json:"discount_cents"`
	TotalCents    int64  `json:"total_cents"`
	CouponApplied bool   `json:"coupon_applied"`
	CouponMessage string `json:"coupon_message,omitempty"`
}
