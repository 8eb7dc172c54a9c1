// Package policy holds the entitlement rules of the catalog.
// It is the single place deciding who may use, favorite, review or edit a service,
// and it never touches storage.
package policy

import (
	"toolbox/internal/domain/entity"
	domainerrors "toolbox/internal/domain/errors"

	"github.com/google/uuid"
)

// CanUse reports whether a caller holding roles may invoke service.
//
// Pending templates are closed to everyone, admins included: an admin interacts with a
// template only through approval or rejection.
func CanUse(roles entity.Roles, service *entity.Service) bool {
	if service == nil || service.IsTemplate() {
		return false
	}

	switch {
	case roles.Contains(entity.RoleAdmin), roles.Contains(entity.RoleBusinessUser):
		return true
	case roles.Contains(entity.RoleUser):
		return service.AccessTier.IsOpen()
	default:
		return false
	}
}

// CanFavoriteOrReview reports whether service accepts favorites and reviews.
// Any authenticated identity may act on a published service.
func CanFavoriteOrReview(service *entity.Service) bool {
	return service != nil && !service.IsTemplate()
}

// CanEditCatalogEntry reports whether roles may create, update or delete catalog entries.
func CanEditCatalogEntry(roles entity.Roles) bool {
	return roles.Contains(entity.RoleAdmin)
}

// CanEditViaStandardPath reports whether service may go through the generic update path.
func CanEditViaStandardPath(service *entity.Service) bool {
	return service != nil && !service.IsTemplate()
}

// RequireUse returns ErrServicePending for templates and ErrServiceAccessDenied when the tier is not covered.
func RequireUse(roles entity.Roles, service *entity.Service) error {
	if service.IsTemplate() {
		return domainerrors.ErrServicePending
	}
	if !CanUse(roles, service) {
		return domainerrors.ErrServiceAccessDenied
	}

	return nil
}

// RequireFavoriteOrReview returns ErrServicePending unless service is published.
func RequireFavoriteOrReview(service *entity.Service) error {
	if !CanFavoriteOrReview(service) {
		return domainerrors.ErrServicePending
	}

	return nil
}

// RequireCatalogEditor returns ErrAdminRequired unless roles contain admin.
func RequireCatalogEditor(roles entity.Roles) error {
	if !CanEditCatalogEntry(roles) {
		return domainerrors.ErrAdminRequired
	}

	return nil
}

// RequireStandardEdit returns ErrTemplateStandardEdit for pending templates.
func RequireStandardEdit(service *entity.Service) error {
	if !CanEditViaStandardPath(service) {
		return domainerrors.ErrTemplateStandardEdit
	}

	return nil
}

// RequirePending returns ErrTemplateNotPending unless service is strictly pending.
func RequirePending(service *entity.Service) error {
	if service.State != entity.ServiceStatePending {
		return domainerrors.ErrTemplateNotPending
	}

	return nil
}

// CanManageReview reports whether actorID holding roles may edit or delete review.
// Owners manage their own reviews; admins may manage any.
func CanManageReview(actorID uuid.UUID, roles entity.Roles, review *entity.Review) bool {
	return review.IsOwnedBy(actorID) || roles.Contains(entity.RoleAdmin)
}

// RequireReviewManager returns ErrNotReviewOwner unless actorID may manage review.
func RequireReviewManager(actorID uuid.UUID, roles entity.Roles, review *entity.Review) error {
	if !CanManageReview(actorID, roles, review) {
		return domainerrors.ErrNotReviewOwner
	}

	return nil
}
