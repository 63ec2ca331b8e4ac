package product

import (
	"errors"
	"time"

	"github.com/webstore/storefront/internal/service/models/money"
)

var (
	// ErrProductNotFound is returned when a referenced product does not exist
	// or is not available to customers.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a stock decrement would drive
	// the stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product represents an item in the catalog.
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       money.Money `json:"price"`
	Stock       int         `json:"stock"`
	Category    *string     `json:"category"`
	Image       *string     `json:"image"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// InStock reports whether the product has at least the given quantity available.
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}
