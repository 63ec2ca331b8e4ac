package placeorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/order"
	"github.com/webstore/storefront/internal/service/models/product"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) PlaceOrder(ctx context.Context, ord order.Order) (*order.Order, error) {
	args := m.Called(ctx, ord)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*order.Order), args.Error(1)
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func doRequest(t *testing.T, svc *mockService, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	PlaceOrder(rec, req, svc)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec.Code, env
}

const validBody = `{
	"customer_name": "John Doe",
	"customer_email": "john.doe@example.com",
	"shipping_address": "123 Main Street, Springfield",
	"items": [{"product_id": 1, "quantity": 2}]
}`

func TestPlaceOrder_Created(t *testing.T) {
	total, err := money.Parse("59.98")
	require.NoError(t, err)

	svc := new(mockService)
	svc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(ord order.Order) bool {
		return ord.CustomerName == "John Doe" &&
			len(ord.OrderItems) == 1 &&
			ord.OrderItems[0].ProductID == 1 &&
			ord.OrderItems[0].Quantity == 2
	})).Return(&order.Order{
		ID:              7,
		CustomerName:    "John Doe",
		CustomerEmail:   "john.doe@example.com",
		ShippingAddress: "123 Main Street, Springfield",
		Total:           total,
		Status:          order.StatusPending,
	}, nil)

	code, env := doRequest(t, svc, validBody)

	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)
	assert.Equal(t, "Order placed successfully", env.Message)

	var placed struct {
		ID     int64  `json:"id"`
		Total  string `json:"total"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Equal(t, int64(7), placed.ID)
	assert.Equal(t, "59.98", placed.Total)
	assert.Equal(t, "pending", placed.Status)

	svc.AssertExpectations(t)
}

func TestPlaceOrder_ValidationFailed(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{
			name:    "MissingCustomerName",
			body:    `{"customer_email":"john@example.com","shipping_address":"addr","items":[{"product_id":1,"quantity":1}]}`,
			field:   "customer_name",
			message: "this field is required",
		},
		{
			name:    "InvalidEmail",
			body:    `{"customer_name":"John","customer_email":"not-an-email","shipping_address":"addr","items":[{"product_id":1,"quantity":1}]}`,
			field:   "customer_email",
			message: "must be a valid email address",
		},
		{
			name:    "EmptyItems",
			body:    `{"customer_name":"John","customer_email":"john@example.com","shipping_address":"addr","items":[]}`,
			field:   "items",
			message: "must be at least 1",
		},
		{
			name:    "ZeroQuantity",
			body:    `{"customer_name":"John","customer_email":"john@example.com","shipping_address":"addr","items":[{"product_id":1,"quantity":0}]}`,
			field:   "items[0].quantity",
			message: "this field is required",
		},
		{
			name:    "PhoneTooLong",
			body:    `{"customer_name":"John","customer_email":"john@example.com","customer_phone":"+1-555-0100-0100-0100-0100","shipping_address":"addr","items":[{"product_id":1,"quantity":1}]}`,
			field:   "customer_phone",
			message: "must be at most 20 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)

			code, env := doRequest(t, svc, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, code)
			assert.False(t, env.Success)
			assert.Equal(t, "Validation failed", env.Message)
			assert.Equal(t, tt.message, env.Errors[tt.field])

			svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestPlaceOrder_MalformedBody(t *testing.T) {
	svc := new(mockService)

	code, env := doRequest(t, svc, `{"customer_name": `)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to decode request body", env.Message)
	svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestPlaceOrder_ServiceFailure(t *testing.T) {
	svc := new(mockService)
	svc.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w for product %q", product.ErrInsufficientStock, "Wireless Mouse"))

	code, env := doRequest(t, svc, validBody)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, `Failed to create order: insufficient stock for product "Wireless Mouse"`, env.Message)
}

func TestPlaceOrder_GenericServiceError(t *testing.T) {
	svc := new(mockService)
	svc.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	code, env := doRequest(t, svc, validBody)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Failed to create order: database unavailable", env.Message)
}
