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

// serviceRepository implements the domain.ServiceRepository interface using GORM.
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository is the constructor for serviceRepository.
func NewServiceRepository(db *gorm.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

// FindByID retrieves a single catalog entry by its ID.
func (repo *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var m model.ServiceModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service by id")
	}

	return toServiceDomain(&m), nil
}

// List returns the requested page plus the total match count.
func (repo *serviceRepository) List(ctx context.Context, filter repository.ServiceFilter) ([]*entity.Service, int64, error) {
	query := applyServiceFilter(repo.db.WithContext(ctx).Model(&model.ServiceModel{}), filter).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count services")
	}

	var rows []model.ServiceModel
	paged := query.Order(orderClause(filter.Sort)).Offset(filter.Offset)
	if filter.Limit > 0 {
		paged = paged.Limit(filter.Limit)
	}
	if err := paged.Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list services")
	}

	services := make([]*entity.Service, 0, len(rows))
	for i := range rows {
		services = append(services, toServiceDomain(&rows[i]))
	}

	return services, total, nil
}

func applyServiceFilter(query *gorm.DB, filter repository.ServiceFilter) *gorm.DB {
	if len(filter.States) > 0 {
		var pending, published bool
		for _, state := range filter.States {
			switch state {
			case entity.ServiceStatePending:
				pending = true
			case entity.ServiceStatePublished:
				published = true
			}
		}
		switch {
		case pending && published:
		case pending:
			query = query.Where("is_template = ? AND is_approved = ?", true, false)
		case published:
			query = query.Where("NOT (is_template = ? AND is_approved = ?)", true, false)
		default:
			query = query.Where("1 = 0")
		}
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AccessTier != nil {
		query = query.Where("access_tier = ?", string(*filter.AccessTier))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	return query
}

func orderClause(sort repository.ServiceSort) string {
	switch sort {
	case repository.ServiceSortNewest:
		return "created_on DESC, id ASC"
	case repository.ServiceSortPopular:
		return "views_count DESC, title ASC, id ASC"
	default:
		return "title ASC, id ASC"
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Create inserts a new catalog entry and writes the generated ID back to the entity.
func (repo *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	m := fromServiceDomain(service)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateServiceWriteErr(err, "failed to create service")
	}
	service.ID = m.ID

	return nil
}

// Update overwrites every mutable column of an existing entry.
func (repo *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	m := fromServiceDomain(service)
	result := repo.db.WithContext(ctx).Model(&model.ServiceModel{}).
		Where("id = ?", service.ID).
		Select("title", "description", "category_id", "access_tier", "is_template", "is_approved",
			"approved_by_user_id", "approved_on", "modified_on").
		Updates(m)
	if result.Error != nil {
		return translateServiceWriteErr(result.Error, "failed to update service")
	}
	if result.RowsAffected == 0 {
		return repository.ErrServiceNotFound
	}

	return nil
}

// Delete removes the entry; favorites and reviews go with it through ON DELETE CASCADE.
func (repo *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ServiceModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete service")
	}
	if result.RowsAffected == 0 {
		return repository.ErrServiceNotFound
	}

	return nil
}

// IncrementViews bumps the view counter in a single statement.
func (repo *serviceRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Model(&model.ServiceModel{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment service views")
	}
	if result.RowsAffected == 0 {
		return repository.ErrServiceNotFound
	}

	return nil
}

// CountByCategory returns how many entries reference the category.
func (repo *serviceRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.ServiceModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count services by category")
	}

	return count, nil
}

func translateServiceWriteErr(err error, msg string) error {
	if isForeignKeyConstraintViolation(err) {
		return repository.ErrCategoryReference
	}

	return errors.Wrap(err, msg)
}

// toServiceDomain converts a GORM ServiceModel to a domain Service entity.
func toServiceDomain(data *model.ServiceModel) *entity.Service {
	if data == nil {
		return nil
	}

	return &entity.Service{
		ID:               data.ID,
		Title:            data.Title,
		Description:      data.Description,
		CategoryID:       data.CategoryID,
		AccessTier:       entity.AccessTier(data.AccessTier),
		State:            entity.ServiceStateFromFlags(data.IsTemplate, data.IsApproved),
		CreatedByUserID:  data.CreatedByUserID,
		ApprovedByUserID: data.ApprovedByUserID,
		ApprovedOn:       data.ApprovedOn,
		ViewsCount:       data.ViewsCount,
		CreatedOn:        data.CreatedOn,
		ModifiedOn:       data.ModifiedOn,
	}
}

// fromServiceDomain converts a domain Service entity to a GORM ServiceModel.
func fromServiceDomain(data *entity.Service) *model.ServiceModel {
	if data == nil {
		return nil
	}

	isTemplate, isApproved := data.State.Flags()

	return &model.ServiceModel{
		ID:               data.ID,
		Title:            data.Title,
		Description:      data.Description,
		CategoryID:       data.CategoryID,
		AccessTier:       string(data.AccessTier),
		IsTemplate:       isTemplate,
		IsApproved:       isApproved,
		CreatedByUserID:  data.CreatedByUserID,
		ApprovedByUserID: data.ApprovedByUserID,
		ApprovedOn:       data.ApprovedOn,
		ViewsCount:       data.ViewsCount,
		CreatedOn:        data.CreatedOn,
		ModifiedOn:       data.ModifiedOn,
	}
}
