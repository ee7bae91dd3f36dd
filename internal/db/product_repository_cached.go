package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/cache"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

type productStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// CachedProductRepository is a read-through cache over the product table.
// Writes invalidate the affected keys; cache failures fall back to the database.
type CachedProductRepository struct {
	repo  productStore
	cache *cache.RedisCache
	log   *zap.Logger
}

func NewCachedProductRepository(repo productStore, c *cache.RedisCache, log *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		repo:  repo,
		cache: c,
		log:   log.Named("product-cache"),
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

const allProductsKey = "products:all"

func (r *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.cache.Get(ctx, allProductsKey, &products)
	if err == nil {
		r.log.Debug("Cache hit", zap.String("key", allProductsKey))
		return products, nil
	}
	r.logMiss(allProductsKey, err)

	products, err = r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, allProductsKey, products); err != nil {
		r.log.Warn("Failed to cache products", zap.Error(err))
	}
	return products, nil
}

func (r *CachedProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	key := productKey(id)

	var product models.Product
	err := r.cache.Get(ctx, key, &product)
	if err == nil {
		r.log.Debug("Cache hit", zap.String("key", key))
		return &product, nil
	}
	r.logMiss(key, err)

	p, err := r.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if err := r.cache.Set(ctx, key, p); err != nil {
		r.log.Warn("Failed to cache product", zap.Int64("product_id", id), zap.Error(err))
	}
	return p, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product, err := r.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Delete(ctx, allProductsKey); err != nil {
		r.log.Warn("Failed to invalidate cache", zap.Error(err))
	}
	return product, nil
}

func (r *CachedProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, productKey(id), allProductsKey); err != nil {
		r.log.Warn("Failed to invalidate cache", zap.Int64("product_id", id), zap.Error(err))
	}
	return nil
}

func (r *CachedProductRepository) logMiss(key string, err error) {
	if errors.Is(err, redis.Nil) {
		r.log.Debug("Cache miss", zap.String("key", key))
		return
	}
	r.log.Warn("Cache error", zap.String("key", key), zap.Error(err))
}
