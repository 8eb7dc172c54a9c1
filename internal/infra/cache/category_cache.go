// Package cache holds in-process read-through caches in front of repositories.
package cache

import (
	"context"
	"log/slog"
	"time"

	"toolbox/config"
	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultExpiration      = 5 * time.Minute
	defaultCleanupInterval = 10 * time.Minute

	categoryListKey   = "categories:list"
	categoryKeyPrefix = "categories:id:"
)

// cachedCategoryRepository caches category reads; writes go through and invalidate.
type cachedCategoryRepository struct {
	next   repository.CategoryRepository
	cache  *gocache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCategoryRepository wraps next with a go-cache backed read cache.
func NewCategoryRepository(next repository.CategoryRepository, ttl, cleanupInterval time.Duration, logger *slog.Logger) repository.CategoryRepository {
	if ttl <= 0 {
		ttl = defaultExpiration
	}
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	return &cachedCategoryRepository{
		next:   next,
		cache:  gocache.New(ttl, cleanupInterval),
		ttl:    ttl,
		logger: logger,
	}
}

// DecorateCategoryRepository is the fx decorator installing the cache from configuration.
func DecorateCategoryRepository(next repository.CategoryRepository, cfg *config.Config, logger *slog.Logger) repository.CategoryRepository {
	var ttl, cleanup time.Duration
	if cfg != nil && cfg.Cache != nil {
		ttl, cleanup = cfg.Cache.CategoryTTL, cfg.Cache.CleanupInterval
	}

	return NewCategoryRepository(next, ttl, cleanup, logger)
}

func (r *cachedCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	key := categoryKeyPrefix + id.String()
	if value, found := r.cache.Get(key); found {
		if category, ok := value.(entity.Category); ok {
			r.logger.DebugContext(ctx, "category cache hit", slog.String("key", key))

			return &category, nil
		}
		r.logger.ErrorContext(ctx, "wrong type assertion when getting value", slog.String("key", key))
	}

	category, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, *category, r.ttl)

	return category, nil
}

func (r *cachedCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	if value, found := r.cache.Get(categoryListKey); found {
		if categories, ok := value.([]entity.Category); ok {
			r.logger.DebugContext(ctx, "category cache hit", slog.String("key", categoryListKey))

			return toPointers(categories), nil
		}
		r.logger.ErrorContext(ctx, "wrong type assertion when getting value", slog.String("key", categoryListKey))
	}

	categories, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make([]entity.Category, 0, len(categories))
	for _, category := range categories {
		snapshot = append(snapshot, *category)
	}
	r.cache.Set(categoryListKey, snapshot, r.ttl)

	return categories, nil
}

func (r *cachedCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if err := r.next.Create(ctx, category); err != nil {
		return err
	}
	r.cache.Delete(categoryListKey)

	return nil
}

func (r *cachedCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.next.Delete(ctx, id)
	r.cache.Delete(categoryListKey)
	r.cache.Delete(categoryKeyPrefix + id.String())

	return err
}

func toPointers(categories []entity.Category) []*entity.Category {
	result := make([]*entity.Category, 0, len(categories))
	for i := range categories {
		category := categories[i]
		result = append(result, &category)
	}

	return result
}
