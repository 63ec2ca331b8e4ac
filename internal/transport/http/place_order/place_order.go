package placeorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/webstore/storefront/internal/service/models/order"
	"github.com/webstore/storefront/internal/service/models/orderitem"
	"github.com/webstore/storefront/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, ord order.Order) (*order.Order, error)
}

type itemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type request struct {
	UserID          *int64        `json:"user_id"`
	CustomerName    string        `json:"customer_name" validate:"required,max=255"`
	CustomerEmail   string        `json:"customer_email" validate:"required,email,max=255"`
	CustomerPhone   *string       `json:"customer_phone" validate:"omitempty,max=20"`
	ShippingAddress string        `json:"shipping_address" validate:"required"`
	Items           []itemRequest `json:"items" validate:"required,min=1,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field errors under their wire names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// PlaceOrder handles the order placement request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding order placement request", "error", err)

		return
	}

	if err := validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			response.ValidationFailed(w, fieldErrorMessages(fieldErrs))

			return
		}

		response.Error(w, http.StatusBadRequest, "Invalid request")

		return
	}

	items := make([]orderitem.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = orderitem.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	ord := order.Order{
		UserID:          req.UserID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		OrderItems:      items,
	}

	placed, err := service.PlaceOrder(r.Context(), ord)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to create order: "+err.Error())
		slog.Error("Error placing order", "error", err)

		return
	}

	response.Created(w, "Order placed successfully", placed)
}

// fieldErrorMessages flattens validator errors into a field -> message map.
func fieldErrorMessages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}

		switch fe.Tag() {
		case "required":
			out[field] = "this field is required"
		case "email":
			out[field] = "must be a valid email address"
		case "max":
			out[field] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "min":
			out[field] = fmt.Sprintf("must be at least %s", fe.Param())
		default:
			out[field] = "is invalid"
		}
	}

	return out
}
