package postgres

import (
	"context"
	"strings"

	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/repository"
	"toolbox/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// categoryRepository implements the domain.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var m model.CategoryModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(&m), nil
}

// List returns every category ordered by name.
func (repo *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var rows []model.CategoryModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, toCategoryDomain(&rows[i]))
	}

	return categories, nil
}

// Create inserts a category. Names are unique regardless of case.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	var existing int64
	err := repo.db.WithContext(ctx).Model(&model.CategoryModel{}).
		Where("LOWER(name) = ?", strings.ToLower(category.Name)).
		Count(&existing).Error
	if err != nil {
		return errors.Wrap(err, "failed to check category name")
	}
	if existing > 0 {
		return repository.ErrCategoryExists
	}

	m := fromCategoryDomain(category)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCategoryExists
		}

		return errors.Wrap(err, "failed to create category")
	}
	category.ID = m.ID
	category.CreatedAt = m.CreatedAt

	return nil
}

// Delete removes a category. The RESTRICT foreign key rejects categories still in use.
func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CategoryModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrCategoryReferenced
		}

		return errors.Wrap(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
	}
}
