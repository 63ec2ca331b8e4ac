package notification

import (
	"time"
)

// OrderConfirmation is the message handed to the notification queue after
// an order commits. The mail service renders and delivers it out of band.
type OrderConfirmation struct {
	MessageID       string             `json:"message_id"`
	OrderID         int64              `json:"order_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	ShippingAddress string             `json:"shipping_address"`
	Total           string             `json:"total"`
	Lines           []ConfirmationLine `json:"lines"`
	PlacedAt        time.Time          `json:"placed_at"`
}

// ConfirmationLine is one order line in the confirmation message.
type ConfirmationLine struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}
