package iproductrepo

import (
	"context"

	"github.com/webstore/storefront/internal/service/models/product"
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	// Query returns active products matching the filter, newest first.
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)

	// GetByID returns an active product or product.ErrProductNotFound.
	GetByID(ctx context.Context, id int64) (*product.Product, error)

	// GetByIDs resolves products by id regardless of active flag, for
	// order placement.
	GetByIDs(ctx context.Context, ids []int64) ([]product.Product, error)

	// ListCategories returns the distinct non-null categories of active products.
	ListCategories(ctx context.Context) ([]string, error)

	// CheckAvailability reports whether the product exists with stock >= quantity.
	CheckAvailability(ctx context.Context, id int64, quantity int) (bool, error)

	// DecrementStock atomically reduces stock, failing with
	// product.ErrInsufficientStock if the stock would go negative.
	DecrementStock(ctx context.Context, id int64, quantity int) error
}
