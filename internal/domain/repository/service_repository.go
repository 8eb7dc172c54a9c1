package repository

import (
	"context"
	"errors"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrServiceNotFound is returned when no service matches the requested identity.
var ErrServiceNotFound = errors.New("service not found")

// ErrCategoryReference is returned when a write references a category that does not exist.
var ErrCategoryReference = errors.New("service references unknown category")

// ServiceSort selects the ordering of a catalog listing.
type ServiceSort string

const (
	ServiceSortTitle   ServiceSort = "title"
	ServiceSortNewest  ServiceSort = "newest"
	ServiceSortPopular ServiceSort = "popular"
)

// ServiceFilter narrows a catalog listing.
type ServiceFilter struct {
	States     []entity.ServiceState
	CategoryID *uuid.UUID
	AccessTier *entity.AccessTier
	Search     string
	Sort       ServiceSort
	Limit      int
	Offset     int
}

// ServiceRepository persists catalog entries.
type ServiceRepository interface {
	// FindByID returns ErrServiceNotFound when the service does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)

	// List returns the page selected by filter together with the total number of matches.
	List(ctx context.Context, filter ServiceFilter) ([]*entity.Service, int64, error)

	Create(ctx context.Context, service *entity.Service) error

	// Update overwrites the mutable fields and lifecycle state of an existing service.
	Update(ctx context.Context, service *entity.Service) error

	// Delete removes the service along with its favorites and reviews.
	Delete(ctx context.Context, id uuid.UUID) error

	IncrementViews(ctx context.Context, id uuid.UUID) error

	// CountByCategory returns how many services reference categoryID.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
