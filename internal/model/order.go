package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPlaced    = "Placed"
	PaymentStatusSuccess = "Success"

	DefaultPaymentMethod = "GPay"
)

// Order is the canonical order record. Older persisted shapes (item/amount/customer)
// are converted to this one when the store is hydrated.
type Order struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Items         []string        `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Method        string          `json:"method"`
}

// CreateOrderRequest is the payload accepted when placing an order.
// Item and Items are alternatives; Amount is kept as text and parsed by the service.
type CreateOrderRequest struct {
	Item   string   `json:"item"`
	Items  []string `json:"items"`
	Amount string   `json:"amount"`
	Method string   `json:"method"`
}
