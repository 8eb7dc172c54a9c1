package usecase

import (
	"context"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ServiceInput carries the editable fields of a catalog entry.
type ServiceInput struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"max=4000"`
	CategoryID  uuid.UUID         `json:"category_id" validate:"required"`
	AccessTier  entity.AccessTier `json:"access_tier" validate:"required,oneof=free partial premium"`
}

// ListServicesQuery filters and pages a catalog listing.
type ListServicesQuery struct {
	CategoryID *uuid.UUID
	AccessTier *entity.AccessTier
	Search     string
	Sort       string
	Limit      int
	Offset     int
}

// --- Output DTOs ---

// ServiceView is a catalog entry annotated for a specific caller.
type ServiceView struct {
	Service       *entity.Service
	IsFavorite    bool
	CanUse        bool
	ReviewCount   int
	AverageRating float64
}

// ServicePage is one page of a catalog listing.
type ServicePage struct {
	Items  []*ServiceView
	Total  int64
	Limit  int
	Offset int
}

// CatalogUsecase exposes the catalog to browsing callers and the admin editing path.
type CatalogUsecase interface {
	ListServices(ctx context.Context, actor Actor, query ListServicesQuery) (*ServicePage, error)
	GetServiceDetail(ctx context.Context, actor Actor, serviceID uuid.UUID) (*ServiceView, error)

	CreateService(ctx context.Context, actor Actor, input ServiceInput) (*entity.Service, error)
	GetServiceForEdit(ctx context.Context, actor Actor, serviceID uuid.UUID) (*entity.Service, error)
	UpdateService(ctx context.Context, actor Actor, serviceID uuid.UUID, input ServiceInput) (*entity.Service, error)
	DeleteService(ctx context.Context, actor Actor, serviceID uuid.UUID) error
}
