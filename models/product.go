package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductFilter narrows the public catalog. An empty Category matches every
// product; Popular orders by the number of carts holding the product.
type ProductFilter struct {
	Category string
	Popular  bool
}
