package getorder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/webstore/storefront/internal/service/models/order"
	"github.com/webstore/storefront/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
}

// GetOrder handles the single order lookup request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusNotFound, "Order not found")

		return
	}

	ord, err := service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			response.Error(w, http.StatusNotFound, "Order not found")

			return
		}

		response.Error(w, http.StatusInternalServerError, "Failed to fetch order")
		slog.Error("Error getting order", "order_id", id, "error", err)

		return
	}

	response.Success(w, http.StatusOK, ord)
}
