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
	"go.uber.org/fx"
)

const maxCategoryNameLength = 100

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	serviceRepo  repository.ServiceRepository
	now          clock
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	ServiceRepo  repository.ServiceRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		serviceRepo:  params.ServiceRepo,
		now:          systemClock,
		logger:       params.Logger,
	}
}

// ListCategories returns every category ordered by name.
func (srv *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateCategory adds a category with a unique name.
func (srv *categoryService) CreateCategory(ctx context.Context, actor usecase.Actor, name string) (*entity.Category, error) {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxCategoryNameLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("category name must be 1 to 100 characters")
	}

	category := &entity.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: srv.now(),
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return nil, domainerrors.ErrCategoryAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create category")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Category created", slog.Any("categoryID", category.ID), slog.String("name", name))

	return category, nil
}

// DeleteCategory removes a category that no service references.
func (srv *categoryService) DeleteCategory(ctx context.Context, actor usecase.Actor, categoryID uuid.UUID) error {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return err
	}

	if _, err := srv.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to find category")
	}

	inUse, err := srv.serviceRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return errors.Wrap(err, "failed to count services in category")
	}
	if inUse > 0 {
		return domainerrors.ErrCategoryInUse
	}

	if err := srv.categoryRepo.Delete(ctx, categoryID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryReferenced):
			return domainerrors.ErrCategoryInUse
		case errors.Is(err, repository.ErrCategoryNotFound):
			return domainerrors.ErrCategoryNotFound
		default:
			return errors.Wrap(err, "failed to delete category")
		}
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Category deleted", slog.Any("categoryID", categoryID))

	return nil
}
