package impl

import (
	"context"
	"log/slog"

	deliverycontext "toolbox/internal/delivery/context"
	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/policy"
	"toolbox/internal/domain/repository"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// favoriteService implements the FavoriteUsecase interface.
type favoriteService struct {
	txManager repository.TransactionManager
	now       clock
	logger    *slog.Logger
}

// NewFavoriteService is the constructor for favoriteService.
func NewFavoriteService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.FavoriteUsecase {
	return &favoriteService{
		txManager: txManager,
		now:       systemClock,
		logger:    logger,
	}
}

// ToggleFavorite adds the service to the actor's favorites, or removes it when already present.
//
// A concurrent toggle may insert the pair between the existence check and the insert; the
// unique pair then reports a duplicate, which is resolved as "already present" and removed.
func (srv *favoriteService) ToggleFavorite(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (bool, error) {
	var favorited bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		svc, err := loadService(ctx, repoFactory.ServiceRepo(), serviceID)
		if err != nil {
			return err
		}
		if err := policy.RequireFavoriteOrReview(svc); err != nil {
			return err
		}

		favoriteRepo := repoFactory.FavoriteRepo()

		exists, err := favoriteRepo.Exists(ctx, actor.UserID, serviceID)
		if err != nil {
			return errors.Wrap(err, "failed to check favorite")
		}

		if !exists {
			err = favoriteRepo.Create(ctx, &entity.Favorite{
				UserID:    actor.UserID,
				ServiceID: serviceID,
				CreatedAt: srv.now(),
			})
			if err == nil {
				favorited = true

				return nil
			}
			if !errors.Is(err, repository.ErrDuplicateFavorite) {
				return errors.Wrap(err, "failed to add favorite")
			}
		}

		if err := favoriteRepo.Delete(ctx, actor.UserID, serviceID); err != nil && !errors.Is(err, repository.ErrFavoriteNotFound) {
			return errors.Wrap(err, "failed to remove favorite")
		}
		favorited = false

		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to toggle favorite")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Favorite toggled",
		slog.Any("serviceID", serviceID),
		slog.Any("userID", actor.UserID),
		slog.Bool("favorited", favorited),
	)

	return favorited, nil
}

// ListFavorites returns the actor's favorites, newest first.
func (srv *favoriteService) ListFavorites(ctx context.Context, actor usecase.Actor) ([]*entity.Favorite, error) {
	var favorites []*entity.Favorite
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		items, err := repoFactory.FavoriteRepo().ListByUser(ctx, actor.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list favorites")
		}
		favorites = items

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favorites")
	}

	return favorites, nil
}
