package models

import "time"

// Gender is the closed set of audiences a jewellery piece is listed under.
type Gender string

const (
	GenderWomen  Gender = "women"
	GenderMen    Gender = "men"
	GenderUnisex Gender = "unisex"
	GenderKids   Gender = "kids"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderWomen, GenderMen, GenderUnisex, GenderKids:
		return true
	}

	return false
}

type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}

	return false
}

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product prices are integer paise (minor currency units). They stay integers
// through every calculation; only display formatting converts to rupees.
type Product struct {
	ID            int64         `json:"id"`
	CategoryID    int64         `json:"category_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	PriceCents    int64         `json:"price_cents"`
	StockQuantity int64         `json:"stock_quantity"`
	SKU           string        `json:"sku"`
	Gender        Gender        `json:"gender"`
	Status        ProductStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Category      *Category     `json:"category,omitempty"`
}

type CreateProductRequest struct {
	CategoryID    int64  `json:"category_id" validate:"required"`
	Name          string `json:"name" validate:"required,min=3,max=200"`
	Description   string `json:"description,omitempty"`
	PriceCents    int64  `json:"price_cents" validate:"required,gt=0"`
	StockQuantity int64  `json:"stock_quantity" validate:"required,gte=0"`
	SKU           string `json:"sku" validate:"required,min=3,max=50"`
	Gender        Gender `json:"gender" validate:"required,oneof=women men unisex kids"`
}

type UpdateProductRequest struct {
	CategoryID    *int64         `json:"category_id,omitempty"`
	Name          *string        `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string        `json:"description,omitempty"`
	PriceCents    *int64         `json:"price_cents,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int64         `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Gender        *Gender        `json:"gender,omitempty" validate:"omitempty,oneof=women men unisex kids"`
	Status        *ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive discontinued"`
}
