package catalogsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"github.com/webstore/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/webstore/storefront/internal/dal/postgres"
	"github.com/webstore/storefront/internal/dal/redis"
	productrepo "github.com/webstore/storefront/internal/dal/repositories/product/postgres"
	"github.com/webstore/storefront/internal/service/models/product"
)

const categoriesCacheKey = "catalog:categories"

// cache is the read-through cache used for category listings.
type cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogService is a service for browsing the product catalog.
type CatalogService struct {
	productRepo iproductrepo.IProductRepository
	cache       cache
	cacheTTL    time.Duration
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	ttlSeconds := viper.GetInt("catalog.categories_cache_ttl_seconds")
	if ttlSeconds == 0 {
		ttlSeconds = 60
	}

	s := &CatalogService{
		cacheTTL: time.Duration(ttlSeconds) * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.productRepo = productrepo.NewPostgresProductRepository(pgClient.DB())
	}
}

// WithProductRepository sets the product repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *CatalogService) {
		s.productRepo = repo
	}
}

// WithRedisClient enables category caching through Redis.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRedisClient(client *redis.Client) option {
	return func(s *CatalogService) {
		s.cache = client
	}
}

// ListProducts returns active products matching the filter, newest first.
func (s *CatalogService) ListProducts(
	ctx context.Context,
	filter product.QueryProductsModel,
) ([]product.Product, error) {
	return s.productRepo.Query(ctx, &filter)
}

// GetProduct returns an active product or product.ErrProductNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// ListCategories returns the distinct categories of active products. Results
// are cached for a short TTL; cache failures fall back to the database.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		var cached []string
		hit, err := s.cache.Get(ctx, categoriesCacheKey, &cached)
		if err != nil {
			slog.WarnContext(ctx, "Category cache read failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categoriesCacheKey, categories, s.cacheTTL); err != nil {
			slog.WarnContext(ctx, "Category cache write failed", "error", err)
		}
	}

	return categories, nil
}
