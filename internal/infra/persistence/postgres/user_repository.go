package postgres

import (
	"context"
	"time"

	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/repository"
	"toolbox/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading granted roles.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindRoles resolves the roles of a user without loading the rest of the row.
func (repo *userRepository) FindRoles(ctx context.Context, id uuid.UUID) (entity.Roles, error) {
	var exists int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		return nil, errors.Wrap(err, "failed to look up user")
	}
	if exists == 0 {
		return nil, repository.ErrUserNotFound
	}

	var roles []string
	err := repo.db.WithContext(ctx).Model(&model.UserRoleModel{}).
		Where("user_id = ?", id).
		Order("role ASC").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user roles")
	}

	return entity.RolesFromStrings(roles), nil
}

// UpdateLastServiceCreationDate stamps the submission window of the user.
func (repo *userRepository) UpdateLastServiceCreationDate(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("last_service_creation_date", at)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update last service creation date")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	roles := make([]string, 0, len(data.Roles))
	for _, r := range data.Roles {
		roles = append(roles, r.Role)
	}

	return &entity.User{
		ID:                      data.ID,
		Email:                   data.Email,
		Name:                    data.Name,
		Roles:                   entity.RolesFromStrings(roles),
		LastServiceCreationDate: data.LastServiceCreationDate,
		CreatedAt:               data.CreatedAt,
		UpdatedAt:               data.UpdatedAt,
	}
}
