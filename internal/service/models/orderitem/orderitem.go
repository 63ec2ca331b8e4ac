package orderitem

import (
	"time"

	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/product"
)

// OrderItem represents a single line within an order. Price is a snapshot
// of the product price taken at order time and is never recomputed.
type OrderItem struct {
	ID        int64            `json:"id"`
	OrderID   int64            `json:"order_id"`
	ProductID int64            `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Price     money.Money      `json:"price"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Product   *product.Product `json:"product,omitempty"`
}

// Subtotal returns the line total, snapshot price times quantity.
func (oi *OrderItem) Subtotal() money.Money {
	return oi.Price.Mul(oi.Quantity)
}
