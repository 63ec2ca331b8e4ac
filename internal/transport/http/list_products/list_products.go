package listproducts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/webstore/storefront/internal/service/models/product"
	"github.com/webstore/storefront/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	ListProducts(ctx context.Context, filter product.QueryProductsModel) ([]product.Product, error)
}

// ListProducts handles the product listing request with optional category
// and search filters.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	filter := product.QueryProductsModel{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}

	products, err := service.ListProducts(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		slog.Error("Error listing products", "error", err)

		return
	}

	response.Success(w, http.StatusOK, products)
}
