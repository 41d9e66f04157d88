package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Email    string `json:"email" form:"email"`
}

type TokenRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh" binding:"required"`
}

// ProductRequest is validated by the catalog service so that every field
// problem is reported at once; pointers distinguish "missing" from zero.
type ProductRequest struct {
	Name     string           `json:"name" form:"name"`
	Category string           `json:"category" form:"category"`
	Price    *decimal.Decimal `json:"price" form:"price"`
	Stock    *int             `json:"stock" form:"stock"`
	Image    string           `json:"image" form:"image"`
}

type AddToCartRequest struct {
	ProductID int  `json:"product_id" form:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" form:"quantity"`
}

type CheckoutRequest struct {
	PromoCode string `json:"promo_code" form:"promo_code"`
}

type WishlistRequest struct {
	ProductID int `json:"product_id" form:"product_id" binding:"required"`
}

type PromoRequest struct {
	Code               string `json:"code" form:"code"`
	DiscountPercentage *int   `json:"discount_percentage" form:"discount_percentage"`
	Active             *bool  `json:"active" form:"active"`
	ExpiryDate         string `json:"expiry_date" form:"expiry_date"`
}
