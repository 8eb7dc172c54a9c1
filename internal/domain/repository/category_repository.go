package repository

import (
	"context"
	"errors"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrCategoryNotFound is returned when a category lookup misses.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned on a duplicate category name.
	ErrCategoryExists = errors.New("category already exists")
	// ErrCategoryReferenced is returned when a category still has services attached.
	ErrCategoryReferenced = errors.New("category is referenced by services")
)

// CategoryRepository persists service categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
