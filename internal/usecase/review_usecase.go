package usecase

import (
	"context"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewInput carries a rating and comment.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ReviewUsecase manages reviews on published services.
type ReviewUsecase interface {
	AddReview(ctx context.Context, actor Actor, serviceID uuid.UUID, input ReviewInput) (*entity.Review, error)
	UpdateReview(ctx context.Context, actor Actor, reviewID uuid.UUID, input ReviewInput) (*entity.Review, error)
	DeleteReview(ctx context.Context, actor Actor, reviewID uuid.UUID) error
	ListReviews(ctx context.Context, serviceID uuid.UUID) ([]*entity.Review, error)
}
