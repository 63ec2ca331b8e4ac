package listcategories

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/webstore/storefront/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	ListCategories(ctx context.Context) ([]string, error)
}

// ListCategories handles the category listing request.
func ListCategories(w http.ResponseWriter, r *http.Request, service service) {
	categories, err := service.ListCategories(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch categories")
		slog.Error("Error listing categories", "error", err)

		return
	}

	if categories == nil {
		categories = []string{}
	}

	response.Success(w, http.StatusOK, categories)
}
