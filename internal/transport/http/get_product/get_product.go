package getproduct

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/webstore/storefront/internal/service/models/product"
	"github.com/webstore/storefront/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
}

// GetProduct handles the single product lookup request.
func GetProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusNotFound, "Product not found")

		return
	}

	p, err := service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			response.Error(w, http.StatusNotFound, "Product not found")

			return
		}

		response.Error(w, http.StatusInternalServerError, "Failed to fetch product")
		slog.Error("Error getting product", "product_id", id, "error", err)

		return
	}

	response.Success(w, http.StatusOK, p)
}
