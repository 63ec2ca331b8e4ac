package order

import (
	"errors"
	"time"

	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/orderitem"
)

// ErrOrderNotFound is returned when the requested order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// Status is the lifecycle state of an order. Placement only ever produces
// pending orders; later states belong to fulfilment.
type Status string

const (
	StatusPending Status = "pending"
)

func (s Status) String() string {
	return string(s)
}

// Order represents a customer order with its line items.
type Order struct {
	ID              int64                 `json:"id"`
	UserID          *int64                `json:"user_id"`
	CustomerName    string                `json:"customer_name"`
	CustomerEmail   string                `json:"customer_email"`
	CustomerPhone   *string               `json:"customer_phone"`
	ShippingAddress string                `json:"shipping_address"`
	Total           money.Money           `json:"total"`
	Status          Status                `json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	OrderItems      []orderitem.OrderItem `json:"order_items"`
}
