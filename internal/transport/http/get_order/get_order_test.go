package getorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/order"
	"github.com/webstore/storefront/internal/service/models/orderitem"
	"github.com/webstore/storefront/internal/service/models/product"
	"github.com/webstore/storefront/internal/transport/http/response"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*order.Order), args.Error(1)
}

func doRequest(t *testing.T, svc *mockService, id string) (int, response.Envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	GetOrder(rec, req, svc)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec.Code, env
}

func TestGetOrder(t *testing.T) {
	t.Run("FoundWithItemsAndProducts", func(t *testing.T) {
		price, err := money.Parse("29.99")
		require.NoError(t, err)
		total, err := money.Parse("59.98")
		require.NoError(t, err)

		svc := new(mockService)
		svc.On("GetOrder", mock.Anything, int64(7)).
			Return(&order.Order{
				ID:     7,
				Total:  total,
				Status: order.StatusPending,
				OrderItems: []orderitem.OrderItem{
					{
						ID:        1,
						OrderID:   7,
						ProductID: 5,
						Quantity:  2,
						Price:     price,
						Product:   &product.Product{ID: 5, Name: "Wireless Mouse"},
					},
				},
			}, nil)

		code, env := doRequest(t, svc, "7")

		assert.Equal(t, http.StatusOK, code)
		assert.True(t, env.Success)

		data, ok := env.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "59.98", data["total"])
		assert.Equal(t, "pending", data["status"])

		items, ok := data["order_items"].([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)
		item := items[0].(map[string]interface{})
		assert.Equal(t, "29.99", item["price"])
		assert.Equal(t, "Wireless Mouse", item["product"].(map[string]interface{})["name"])
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetOrder", mock.Anything, int64(404)).
			Return(nil, order.ErrOrderNotFound)

		code, env := doRequest(t, svc, "404")

		assert.Equal(t, http.StatusNotFound, code)
		assert.False(t, env.Success)
		assert.Equal(t, "Order not found", env.Message)
	})

	t.Run("NonNumericID", func(t *testing.T) {
		svc := new(mockService)

		code, env := doRequest(t, svc, "latest")

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Order not found", env.Message)
		svc.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	})
}
