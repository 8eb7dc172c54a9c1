package usecase

import (
	"context"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// FavoriteUsecase manages a caller's favorite services.
type FavoriteUsecase interface {
	// ToggleFavorite flips the favorite state and returns the resulting state.
	ToggleFavorite(ctx context.Context, actor Actor, serviceID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, actor Actor) ([]*entity.Favorite, error)
}
