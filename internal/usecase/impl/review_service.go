package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "toolbox/internal/delivery/context"
	"toolbox/internal/domain/entity"
	domainerrors "toolbox/internal/domain/errors"
	"toolbox/internal/domain/policy"
	"toolbox/internal/domain/repository"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	now       clock
	logger    *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		txManager: txManager,
		now:       systemClock,
		logger:    logger,
	}
}

func validateReviewInput(input *usecase.ReviewInput) error {
	input.Comment = strings.TrimSpace(input.Comment)
	if input.Rating < entity.MinReviewRating || input.Rating > entity.MaxReviewRating {
		return domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	return nil
}

// loadReview fetches a review and checks the actor may manage it.
// A missing review is NotFound, an existing review owned by someone else is Forbidden.
func loadReview(ctx context.Context, repo repository.ReviewRepository, actor usecase.Actor, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	if err := policy.RequireReviewManager(actor.UserID, actor.Roles, review); err != nil {
		return nil, err
	}

	return review, nil
}

// AddReview rates a published service.
func (srv *reviewService) AddReview(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID, input usecase.ReviewInput) (*entity.Review, error) {
	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}

	var review *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		svc, err := loadService(ctx, repoFactory.ServiceRepo(), serviceID)
		if err != nil {
			return err
		}
		if err := policy.RequireFavoriteOrReview(svc); err != nil {
			return err
		}

		now := srv.now()
		review = &entity.Review{
			ID:        uuid.New(),
			UserID:    actor.UserID,
			ServiceID: serviceID,
			Rating:    input.Rating,
			Comment:   input.Comment,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := repoFactory.ReviewRepo().Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to create review")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add review")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Review added",
		slog.Any("reviewID", review.ID),
		slog.Any("serviceID", serviceID),
	)

	return review, nil
}

// UpdateReview changes the rating and comment of a review owned by the actor (or any review, for admins).
func (srv *reviewService) UpdateReview(ctx context.Context, actor usecase.Actor, reviewID uuid.UUID, input usecase.ReviewInput) (*entity.Review, error) {
	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}

	var updated *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := loadReview(ctx, reviewRepo, actor, reviewID)
		if err != nil {
			return err
		}

		review.Rating = input.Rating
		review.Comment = input.Comment
		review.UpdatedAt = srv.now()

		if err := reviewRepo.Update(ctx, review); err != nil {
			return errors.Wrap(err, "failed to update review")
		}
		updated = review

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update review")
	}

	return updated, nil
}

// DeleteReview removes a review owned by the actor (or any review, for admins).
func (srv *reviewService) DeleteReview(ctx context.Context, actor usecase.Actor, reviewID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := loadReview(ctx, reviewRepo, actor, reviewID)
		if err != nil {
			return err
		}

		if err := reviewRepo.Delete(ctx, review.ID); err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to delete review")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}

// ListReviews returns the reviews of a published service, newest first.
func (srv *reviewService) ListReviews(ctx context.Context, serviceID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		svc, err := loadService(ctx, repoFactory.ServiceRepo(), serviceID)
		if err != nil {
			return err
		}
		if svc.IsTemplate() {
			return domainerrors.ErrServiceNotFound
		}

		items, err := repoFactory.ReviewRepo().ListByService(ctx, serviceID)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}
		reviews = items

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}
