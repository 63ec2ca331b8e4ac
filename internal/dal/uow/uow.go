package uow

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/webstore/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/webstore/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/webstore/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/webstore/storefront/internal/dal/postgres"
	orderrepo "github.com/webstore/storefront/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/webstore/storefront/internal/dal/repositories/orderitem/postgres"
	productrepo "github.com/webstore/storefront/internal/dal/repositories/product/postgres"
)

type unitOfWork struct {
	db            *sqlx.DB
	tx            *sqlx.Tx
	productRepo   iproductrepo.IProductRepository
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewUnitOfWork(db *postgres.Client) *unitOfWork {
	return &unitOfWork{
		db:            db.DB(),
		productRepo:   productrepo.NewPostgresProductRepository(db.DB()),
		orderRepo:     orderrepo.NewPostgresOrderRepository(db.DB()),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(db.DB()),
	}
}

// Begin opens a transaction and rebinds the repositories to it. Everything
// performed through the repositories afterwards is committed or rolled back
// as one atomic unit.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	u.tx = tx
	u.productRepo = productrepo.NewPostgresProductRepository(tx)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)

	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit()
}

func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback()
}
