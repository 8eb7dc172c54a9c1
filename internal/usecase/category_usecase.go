package usecase

import (
	"context"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryUsecase manages the categories services are filed under.
type CategoryUsecase interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, actor Actor, name string) (*entity.Category, error)
	DeleteCategory(ctx context.Context, actor Actor, categoryID uuid.UUID) error
}
