package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/webstore/storefront/internal/service/models/money"
	"github.com/webstore/storefront/internal/service/models/product"
)

// ProductDal represents product data access layer model.
type ProductDal struct {
	Id          int64          `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Price       money.Money    `db:"price"`
	Stock       int            `db:"stock"`
	Category    sql.NullString `db:"category"`
	Image       sql.NullString `db:"image"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	model := &product.Product{
		ID:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category.Valid {
		model.Category = &p.Category.String
	}
	if p.Image.Valid {
		model.Image = &p.Image.String
	}

	return model
}

var productColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"stock",
	"category",
	"image",
	"is_active",
	"created_at",
	"updated_at",
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn sqlx.ExtContext) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query retrieves active products based on filter criteria, newest first.
func (r *PostgresProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	query := r.sb.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"is_active": true}).
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Category != "" {
		query = query.Where(sq.Eq{"category": filter.Category})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dals []ProductDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	result := make([]product.Product, 0, len(dals))
	for i := range dals {
		result = append(result, *dals[i].ToModel())
	}

	return result, nil
}

// GetByID retrieves an active product by id.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	sqlStr, args, err := r.sb.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal ProductDal
	if err := sqlx.GetContext(ctx, r.conn, &dal, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByIDs resolves products by id regardless of the active flag.
func (r *PostgresProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	sqlStr, args, err := r.sb.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dals []ProductDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	result := make([]product.Product, 0, len(dals))
	for i := range dals {
		result = append(result, *dals[i].ToModel())
	}

	return result, nil
}

// ListCategories returns distinct non-null categories among active products.
func (r *PostgresProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	sqlStr, args, err := r.sb.
		Select("DISTINCT category").
		From("products").
		Where(sq.Eq{"is_active": true}).
		Where(sq.NotEq{"category": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var categories []string
	if err := sqlx.SelectContext(ctx, r.conn, &categories, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

// CheckAvailability reports whether the product exists with stock >= quantity.
func (r *PostgresProductRepository) CheckAvailability(
	ctx context.Context,
	id int64,
	quantity int,
) (bool, error) {
	sqlStr := `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND stock >= $2)`

	var available bool
	if err := sqlx.GetContext(ctx, r.conn, &available, sqlStr, id, quantity); err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	return available, nil
}

// DecrementStock performs a conditional atomic decrement. Zero rows affected
// means the remaining stock is insufficient; the caller must treat that as
// the authoritative failure signal under concurrent placements.
func (r *PostgresProductRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	sqlStr := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
	`

	res, err := r.conn.ExecContext(ctx, sqlStr, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return product.ErrInsufficientStock
	}

	return nil
}
