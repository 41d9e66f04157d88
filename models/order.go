package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderItem snapshots the purchased quantity only; historical totals live on
// Order.TotalAmount.
type OrderItem struct {
	ID          int    `json:"id"`
	OrderID     int    `json:"order_id"`
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}
