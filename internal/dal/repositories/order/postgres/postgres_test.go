package postgresrepo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/order"
)

func newMockRepo(t *testing.T) (*PostgresOrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresOrderRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "customer_name", "customer_email", "customer_phone",
		"shipping_address", "total", "status", "created_at", "updated_at",
	})
}

func TestInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	total, err := money.Parse("59.98")
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO orders \(user_id,customer_name,customer_email,customer_phone,shipping_address,total,status,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9\) RETURNING .+`).
		WithArgs(nil, "John Doe", "john.doe@example.com", nil,
			"123 Main Street, Springfield", "59.98", "pending", now, now).
		WillReturnRows(orderRows().
			AddRow(7, nil, "John Doe", "john.doe@example.com", nil,
				"123 Main Street, Springfield", "59.98", "pending", now, now))

	inserted, err := repo.Insert(context.Background(), order.Order{
		CustomerName:    "John Doe",
		CustomerEmail:   "john.doe@example.com",
		ShippingAddress: "123 Main Street, Springfield",
		Total:           total,
		Status:          order.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), inserted.ID)
	assert.Equal(t, "59.98", inserted.Total.String())
	assert.Equal(t, order.StatusPending, inserted.Status)
	assert.Nil(t, inserted.UserID)
	assert.Nil(t, inserted.CustomerPhone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(orderRows().
				AddRow(7, int64(42), "John Doe", "john.doe@example.com", "+1-555-0100",
					"123 Main Street, Springfield", "59.98", "pending", now, now))

		o, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), o.ID)
		require.NotNil(t, o.UserID)
		assert.Equal(t, int64(42), *o.UserID)
		require.NotNil(t, o.CustomerPhone)
		assert.Equal(t, "+1-555-0100", *o.CustomerPhone)
		assert.NotNil(t, o.OrderItems)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnRows(orderRows())

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
