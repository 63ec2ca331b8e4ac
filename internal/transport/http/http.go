package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/webstore/storefront/internal/service/models/order"
	"github.com/webstore/storefront/internal/service/models/product"
	getorder "github.com/webstore/storefront/internal/transport/http/get_order"
	getproduct "github.com/webstore/storefront/internal/transport/http/get_product"
	listcategories "github.com/webstore/storefront/internal/transport/http/list_categories"
	listproducts "github.com/webstore/storefront/internal/transport/http/list_products"
	placeorder "github.com/webstore/storefront/internal/transport/http/place_order"
	"github.com/webstore/storefront/internal/transport/http/response"
	"github.com/webstore/storefront/pkg/http/middleware/ratelimit"
	tracemw "github.com/webstore/storefront/pkg/http/middleware/trace"
	"github.com/webstore/storefront/pkg/logger"
)

type catalogService interface {
	ListProducts(ctx context.Context, filter product.QueryProductsModel) ([]product.Product, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type orderService interface {
	PlaceOrder(ctx context.Context, ord order.Order) (*order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
}

// pinger checks storage connectivity for the health endpoint.
type pinger interface {
	Ping(ctx context.Context) error
}

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	catalogSvc catalogService
	orderSvc   orderService
	db         pinger
}

func NewHTTPTransport(catalogSvc catalogService, orderSvc orderService, db pinger) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:     server,
		router:     router,
		catalogSvc: catalogSvc,
		orderSvc:   orderSvc,
		db:         db,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/health/db", h.healthDB)

		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/categories", h.listCategories)

		r.Post("/orders", h.placeOrder)
		r.Get("/orders/{id}", h.getOrder)
	})
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.catalogSvc)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	getproduct.GetProduct(w, r, h.catalogSvc)
}

func (h *HTTPTransport) listCategories(w http.ResponseWriter, r *http.Request) {
	listcategories.ListCategories(w, r, h.catalogSvc)
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HTTPTransport) healthDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		slog.Error("Database health check failed", "error", err)
		response.Error(w, http.StatusServiceUnavailable, "database disconnected")

		return
	}

	response.Success(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(tracemw.NewTraceMiddleware)

	limit := viper.GetFloat64("server.http.rate_limit.requests_per_second")
	if limit == 0 {
		limit = 20
	}
	burst := viper.GetInt("server.http.rate_limit.burst")
	if burst == 0 {
		burst = 40
	}
	router.Use(ratelimit.NewLimiter(rate.Limit(limit), burst).Middleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
