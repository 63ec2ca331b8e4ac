package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/order"
	"github.com/webstore/storefront/internal/service/models/orderitem"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id              int64          `db:"id"`
	UserId          sql.NullInt64  `db:"user_id"`
	CustomerName    string         `db:"customer_name"`
	CustomerEmail   string         `db:"customer_email"`
	CustomerPhone   sql.NullString `db:"customer_phone"`
	ShippingAddress string         `db:"shipping_address"`
	Total           money.Money    `db:"total"`
	Status          string         `db:"status"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	model := &order.Order{
		ID:              o.Id,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		Total:           o.Total,
		Status:          order.Status(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		OrderItems:      []orderitem.OrderItem{}, // Will be populated separately
	}
	if o.UserId.Valid {
		model.UserID = &o.UserId.Int64
	}
	if o.CustomerPhone.Valid {
		model.CustomerPhone = &o.CustomerPhone.String
	}

	return model
}

var orderColumns = []string{
	"id",
	"user_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"shipping_address",
	"total",
	"status",
	"created_at",
	"updated_at",
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn sqlx.ExtContext) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert persists one order row and returns it with generated fields.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	var userID interface{}
	if o.UserID != nil {
		userID = *o.UserID
	}
	var phone interface{}
	if o.CustomerPhone != nil {
		phone = *o.CustomerPhone
	}

	sqlStr, args, err := r.sb.
		Insert("orders").
		Columns(
			"user_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"shipping_address",
			"total",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			userID,
			o.CustomerName,
			o.CustomerEmail,
			phone,
			o.ShippingAddress,
			o.Total,
			o.Status.String(),
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var dal OrderDal
	if err := sqlx.GetContext(ctx, r.conn, &dal, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByID retrieves an order without its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	sqlStr, args, err := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal OrderDal
	if err := sqlx.GetContext(ctx, r.conn, &dal, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return dal.ToModel(), nil
}