package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/webstore/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/webstore/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/webstore/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/webstore/storefront/internal/dal/postgres"
	"github.com/webstore/storefront/internal/dal/uow"
	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/order"
	"github.com/webstore/storefront/internal/service/models/orderitem"
	"github.com/webstore/storefront/internal/service/models/product"
)

// OrderService is a service for placing and reading orders.
type OrderService struct {
	pgClient   *postgres.Client
	notifier   notifier
	uowFactory func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() iproductrepo.IProductRepository
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

// notifier delivers order confirmations after commit. Failures are logged
// and never change the placement outcome.
type notifier interface {
	NotifyOrderPlaced(ctx context.Context, o order.Order) error
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithNotifier sets the confirmation notifier for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

// WithUnitOfWorkFactory overrides how units of work are created.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// PlaceOrder validates the requested lines against the catalog, snapshots
// prices, persists the order with its items and decrements stock, all inside
// one transaction. Stock is re-validated at decrement time with a conditional
// update, so concurrent placements can never oversell a product. After the
// commit the confirmation is handed to the notifier; a notification failure
// does not affect the result.
func (s *OrderService) PlaceOrder(ctx context.Context, ord order.Order) (*order.Order, error) {
	work := s.uowFactory()

	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := work.Rollback(); err != nil {
				slog.ErrorContext(ctx, "Failed to roll back order placement", "error", err)
			}
		}
	}()

	productIDs := make([]int64, 0, len(ord.OrderItems))
	for _, item := range ord.OrderItems {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := work.ProductRepository().GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productsByID := make(map[int64]product.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	var total money.Money
	for _, item := range ord.OrderItems {
		p, ok := productsByID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", product.ErrProductNotFound, item.ProductID)
		}
		if !p.InStock(item.Quantity) {
			return nil, fmt.Errorf("%w for product %q", product.ErrInsufficientStock, p.Name)
		}

		total += p.Price.Mul(item.Quantity)
	}

	now := time.Now()
	ord.Total = total
	ord.Status = order.StatusPending
	ord.CreatedAt = now
	ord.UpdatedAt = now

	inserted, err := work.OrderRepository().Insert(ctx, ord)
	if err != nil {
		return nil, err
	}

	items := make([]orderitem.OrderItem, len(ord.OrderItems))
	for i, item := range ord.OrderItems {
		p := productsByID[item.ProductID]
		items[i] = orderitem.OrderItem{
			OrderID:   inserted.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     p.Price, // snapshot, never recomputed from the live product
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := work.ProductRepository().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, product.ErrInsufficientStock) {
				p := productsByID[item.ProductID]

				return nil, fmt.Errorf("%w for product %q", product.ErrInsufficientStock, p.Name)
			}

			return nil, err
		}
	}

	if err := work.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	committed = true

	for i := range items {
		p := productsByID[items[i].ProductID]
		p.Stock -= items[i].Quantity
		items[i].Product = &p
	}
	inserted.OrderItems = items

	if s.notifier != nil {
		if err := s.notifier.NotifyOrderPlaced(ctx, *inserted); err != nil {
			slog.ErrorContext(ctx, "Failed to send order confirmation",
				"order_id", inserted.ID,
				"error", err,
			)
		}
	}

	return inserted, nil
}

// GetOrder retrieves an order with its items and their products.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	work := s.uowFactory()

	ord, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().QueryByOrderIDs(ctx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.OrderItems = items

	return ord, nil
}
