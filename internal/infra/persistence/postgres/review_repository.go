package postgres

import (
	"context"

	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/repository"
	"toolbox/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the domain.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var m model.ReviewModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return toReviewDomain(&m), nil
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	m := fromReviewDomain(review)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrServiceNotFound
		}

		return errors.Wrap(err, "failed to create review")
	}
	review.ID = m.ID

	return nil
}

func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	result := repo.db.WithContext(ctx).Model(&model.ReviewModel{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": review.UpdatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReviewModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*entity.Review, error) {
	var rows []model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, toReviewDomain(&rows[i]))
	}

	return reviews, nil
}

type reviewSummaryRow struct {
	ServiceID     uuid.UUID
	Count         int
	AverageRating float64
}

func (repo *reviewRepository) Summaries(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID]entity.ReviewSummary, error) {
	summaries := make(map[uuid.UUID]entity.ReviewSummary, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return summaries, nil
	}

	var rows []reviewSummaryRow
	err := repo.db.WithContext(ctx).Model(&model.ReviewModel{}).
		Select("service_id, COUNT(*) AS count, AVG(rating)::float8 AS average_rating").
		Where("service_id IN ?", serviceIDs).
		Group("service_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize reviews")
	}
	for _, row := range rows {
		summaries[row.ServiceID] = entity.ReviewSummary{
			Count:         row.Count,
			AverageRating: row.AverageRating,
		}
	}

	return summaries, nil
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:        data.ID,
		UserID:    data.UserID,
		ServiceID: data.ServiceID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:        data.ID,
		UserID:    data.UserID,
		ServiceID: data.ServiceID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
