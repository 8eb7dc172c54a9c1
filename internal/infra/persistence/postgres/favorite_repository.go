package postgres

import (
	"context"

	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/repository"
	"toolbox/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// favoriteRepository implements the domain.FavoriteRepository interface using GORM.
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository is the constructor for favoriteRepository.
func NewFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (repo *favoriteRepository) Exists(ctx context.Context, userID, serviceID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.FavoriteModel{}).
		Where("user_id = ? AND service_id = ?", userID, serviceID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check favorite")
	}

	return count > 0, nil
}

// Create inserts the pair with ON CONFLICT DO NOTHING so a concurrent insert
// surfaces as ErrDuplicateFavorite without aborting the surrounding transaction.
func (repo *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	m := &model.FavoriteModel{
		UserID:    favorite.UserID,
		ServiceID: favorite.ServiceID,
		CreatedAt: favorite.CreatedAt,
	}
	result := repo.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrServiceNotFound
		}

		return errors.Wrap(result.Error, "failed to create favorite")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDuplicateFavorite
	}

	return nil
}

func (repo *favoriteRepository) Delete(ctx context.Context, userID, serviceID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND service_id = ?", userID, serviceID).
		Delete(&model.FavoriteModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete favorite")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFavoriteNotFound
	}

	return nil
}

func (repo *favoriteRepository) FavoritedAmong(ctx context.Context, userID uuid.UUID, serviceIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	favorited := make(map[uuid.UUID]bool, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return favorited, nil
	}

	var ids []uuid.UUID
	err := repo.db.WithContext(ctx).Model(&model.FavoriteModel{}).
		Where("user_id = ? AND service_id IN ?", userID, serviceIDs).
		Pluck("service_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load favorites")
	}
	for _, id := range ids {
		favorited[id] = true
	}

	return favorited, nil
}

// ListByUser returns the user's favorites, most recent first.
func (repo *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	var rows []model.FavoriteModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favorites")
	}

	favorites := make([]*entity.Favorite, 0, len(rows))
	for _, row := range rows {
		favorites = append(favorites, &entity.Favorite{
			UserID:    row.UserID,
			ServiceID: row.ServiceID,
			CreatedAt: row.CreatedAt,
		})
	}

	return favorites, nil
}
