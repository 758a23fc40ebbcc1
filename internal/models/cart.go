package models

// CartItem is one line of a shopping cart. Quantity is always >= 1; a line
// whose quantity drops to zero is removed, never stored.
type CartItem struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int64  `json:"quantity"`
}

func (i CartItem) LineTotalCents() int64 {
	return i.UnitPriceCents * i.Quantity
}

type CartResponse struct {
	Items           []CartItem `json:"items"`
	TotalItems      int64      `json:"total_items"`
	TotalPriceCents int64      `json:"total_price_cents"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int64 `json:"quantity" validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int64 `json:"quantity" validate:"gte=0"`
}
