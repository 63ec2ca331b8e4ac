package postgresrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/orderitem"
	"github.com/webstore/storefront/internal/service/models/product"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id        int64       `db:"id"`
	OrderId   int64       `db:"order_id"`
	ProductId int64       `db:"product_id"`
	Quantity  int         `db:"quantity"`
	Price     money.Money `db:"price"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:        oi.Id,
		OrderID:   oi.OrderId,
		ProductID: oi.ProductId,
		Quantity:  oi.Quantity,
		Price:     oi.Price,
		CreatedAt: oi.CreatedAt,
		UpdatedAt: oi.UpdatedAt,
	}
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn sqlx.ExtContext) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts order items with unnest arrays and returns them with
// generated ids.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sqlStr := `
		INSERT INTO order_items (
			order_id,
			product_id,
			quantity,
			price,
			created_at,
			updated_at
		)
		SELECT
			order_id,
			product_id,
			quantity,
			price,
			created_at,
			updated_at
		FROM unnest($1::bigint[], $2::bigint[], $3::int[], $4::numeric[], $5::timestamptz[], $6::timestamptz[])
		AS t(order_id, product_id, quantity, price, created_at, updated_at)
		RETURNING
			id,
			order_id,
			product_id,
			quantity,
			price,
			created_at,
			updated_at
	`

	orderIds := make([]int64, len(items))
	productIds := make([]int64, len(items))
	quantities := make([]int64, len(items))
	prices := make([]string, len(items))
	createdAts := make([]time.Time, len(items))
	updatedAts := make([]time.Time, len(items))

	for i, item := range items {
		orderIds[i] = item.OrderID
		productIds[i] = item.ProductID
		quantities[i] = int64(item.Quantity)
		prices[i] = item.Price.String()
		createdAts[i] = item.CreatedAt
		updatedAts[i] = item.UpdatedAt
	}

	rows, err := r.conn.QueryContext(ctx, sqlStr,
		pq.Array(orderIds),
		pq.Array(productIds),
		pq.Array(quantities),
		pq.Array(prices),
		pq.Array(createdAts),
		pq.Array(updatedAts))
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.Price,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryByOrderIDs retrieves the items of the given orders, each joined with
// its product for display.
func (r *PostgresOrderItemRepository) QueryByOrderIDs(
	ctx context.Context,
	orderIDs []int64,
) ([]orderitem.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query := r.sb.
		Select(
			"oi.id",
			"oi.order_id",
			"oi.product_id",
			"oi.quantity",
			"oi.price",
			"oi.created_at",
			"oi.updated_at",
			"p.name",
			"p.description",
			"p.price AS product_price",
			"p.stock",
			"p.category",
			"p.image",
			"p.is_active",
			"p.created_at AS product_created_at",
			"p.updated_at AS product_updated_at",
		).
		From("order_items oi").
		Join("products p ON p.id = oi.product_id").
		Where(sq.Eq{"oi.order_id": orderIDs}).
		OrderBy("oi.id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		var productName, productDescription string
		var productPrice money.Money
		var productStock int
		var productCategory, productImage sql.NullString
		var productIsActive bool
		var productCreatedAt, productUpdatedAt time.Time

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.Price,
			&dal.CreatedAt,
			&dal.UpdatedAt,
			&productName,
			&productDescription,
			&productPrice,
			&productStock,
			&productCategory,
			&productImage,
			&productIsActive,
			&productCreatedAt,
			&productUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item := dal.ToModel()
		item.Product = &product.Product{
			ID:          dal.ProductId,
			Name:        productName,
			Description: productDescription,
			Price:       productPrice,
			Stock:       productStock,
			IsActive:    productIsActive,
			CreatedAt:   productCreatedAt,
			UpdatedAt:   productUpdatedAt,
		}
		if productCategory.Valid {
			item.Product.Category = &productCategory.String
		}
		if productImage.Valid {
			item.Product.Image = &productImage.String
		}

		result = append(result, *item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
