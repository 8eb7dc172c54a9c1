package usecase

import (
	"context"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// TemplateUsecase moves user-submitted templates from proposal to published catalog entry.
type TemplateUsecase interface {
	// SubmitTemplate creates a pending template for business users, or a published entry for admins.
	SubmitTemplate(ctx context.Context, actor Actor, input ServiceInput) (*entity.Service, error)
	ApproveTemplate(ctx context.Context, actor Actor, serviceID uuid.UUID) (*entity.Service, error)
	RejectTemplate(ctx context.Context, actor Actor, serviceID uuid.UUID) error
	ListPendingTemplates(ctx context.Context, actor Actor) ([]*entity.Service, error)
}
