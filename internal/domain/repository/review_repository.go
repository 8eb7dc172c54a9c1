package repository

import (
	"context"
	"errors"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review lookup misses.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository persists service reviews.
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByService returns reviews newest first.
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]*entity.Review, error)

	// Summaries aggregates count and average rating per service. Services without reviews are absent.
	Summaries(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID]entity.ReviewSummary, error)
}
