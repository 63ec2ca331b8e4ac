package getproduct

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/product"
	"github.com/webstore/storefront/internal/transport/http/response"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*product.Product), args.Error(1)
}

func doRequest(t *testing.T, svc *mockService, id string) (int, response.Envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	GetProduct(rec, req, svc)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec.Code, env
}

func TestGetProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		price, err := money.Parse("29.99")
		require.NoError(t, err)

		svc := new(mockService)
		svc.On("GetProduct", mock.Anything, int64(5)).
			Return(&product.Product{ID: 5, Name: "Wireless Mouse", Price: price, Stock: 100}, nil)

		code, env := doRequest(t, svc, "5")

		assert.Equal(t, http.StatusOK, code)
		assert.True(t, env.Success)

		data, ok := env.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Wireless Mouse", data["name"])
		assert.Equal(t, "29.99", data["price"])
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetProduct", mock.Anything, int64(404)).
			Return(nil, product.ErrProductNotFound)

		code, env := doRequest(t, svc, "404")

		assert.Equal(t, http.StatusNotFound, code)
		assert.False(t, env.Success)
		assert.Equal(t, "Product not found", env.Message)
	})

	t.Run("NonNumericID", func(t *testing.T) {
		svc := new(mockService)

		code, env := doRequest(t, svc, "abc")

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Product not found", env.Message)
		svc.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetProduct", mock.Anything, int64(5)).
			Return(nil, errors.New("db down"))

		code, env := doRequest(t, svc, "5")

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Failed to fetch product", env.Message)
	})
}
