package repository

import (
	"context"
	"errors"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateFavorite is returned when the (user, service) pair already exists.
	ErrDuplicateFavorite = errors.New("favorite already exists")
	// ErrFavoriteNotFound is returned when deleting a pair that does not exist.
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// FavoriteRepository persists the favorite relation between users and services.
type FavoriteRepository interface {
	Exists(ctx context.Context, userID, serviceID uuid.UUID) (bool, error)

	// Create returns ErrDuplicateFavorite when the pair is already stored.
	Create(ctx context.Context, favorite *entity.Favorite) error

	Delete(ctx context.Context, userID, serviceID uuid.UUID) error

	// FavoritedAmong returns the subset of serviceIDs the user has favorited.
	FavoritedAmong(ctx context.Context, userID uuid.UUID, serviceIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error)
}
