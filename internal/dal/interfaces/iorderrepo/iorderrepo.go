package iorderrepo

import (
	"context"

	"github.com/webstore/storefront/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	// Insert persists one order row and returns it with generated fields.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// GetByID returns an order without items, or order.ErrOrderNotFound.
	GetByID(ctx context.Context, id int64) (*order.Order, error)
}
