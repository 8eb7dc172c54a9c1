package impl

import (
	"context"
	"log/slog"

	deliverycontext "toolbox/internal/delivery/context"
	"toolbox/internal/domain/entity"
	domainerrors "toolbox/internal/domain/errors"
	"toolbox/internal/domain/policy"
	"toolbox/internal/domain/repository"
	"toolbox/internal/domain/service"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// templateService implements the TemplateUsecase interface.
type templateService struct {
	txManager repository.TransactionManager
	limiter   policy.DailySubmissionLimiter
	events    *eventNotifier
	now       clock
	logger    *slog.Logger
}

// TemplateServiceParams holds dependencies for TemplateService, injected by Fx.
type TemplateServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewTemplateService is the constructor for templateService.
func NewTemplateService(params TemplateServiceParams) usecase.TemplateUsecase {
	return &templateService{
		txManager: params.TxManager,
		limiter:   policy.NewDailySubmissionLimiter(),
		events:    newEventNotifier(params.Publisher, params.Logger),
		now:       systemClock,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *templateService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitTemplate creates a template on behalf of the actor.
//
// Admins bypass moderation and the daily limit: their submission is published immediately,
// with no approver recorded. Business users get a pending template, and the submission
// timestamp is written in the same transaction as the template so a failure on either side
// leaves no trace. Callers holding neither role are refused before their input is looked at.
func (srv *templateService) SubmitTemplate(ctx context.Context, actor usecase.Actor, input usecase.ServiceInput) (*entity.Service, error) {
	var created *entity.Service
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find submitting user")
		}

		isAdmin := user.Roles.IsAdmin()
		if !isAdmin && !user.Roles.Contains(entity.RoleBusinessUser) {
			return domainerrors.ErrTemplateSubmissionDenied
		}
		if err := validateServiceInput(&input); err != nil {
			return err
		}

		now := srv.now()
		svc := &entity.Service{
			ID:              uuid.New(),
			Title:           input.Title,
			Description:     input.Description,
			CategoryID:      input.CategoryID,
			AccessTier:      input.AccessTier,
			CreatedByUserID: user.ID,
			CreatedOn:       now,
			ModifiedOn:      now,
		}

		if isAdmin {
			svc.State = entity.ServiceStatePublished
		} else {
			if err := srv.limiter.Allow(user, now); err != nil {
				return err
			}
			svc.State = entity.ServiceStatePending
		}

		if err := requireCategory(ctx, repoFactory.CategoryRepo(), input.CategoryID); err != nil {
			return err
		}

		if err := repoFactory.ServiceRepo().Create(ctx, svc); err != nil {
			return translateServiceWriteErr(err, "create template")
		}

		if svc.IsTemplate() {
			srv.limiter.Record(user, now)
			if err := userRepo.UpdateLastServiceCreationDate(ctx, user.ID, *user.LastServiceCreationDate); err != nil {
				return errors.Wrap(err, "failed to record submission date")
			}
		}

		created = svc

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Template submission failed", slog.Any("userID", actor.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to submit template")
	}

	srv.log(ctx).Info("Template submitted",
		slog.Any("serviceID", created.ID),
		slog.Any("userID", actor.UserID),
		slog.String("state", string(created.State)),
	)
	if created.IsTemplate() {
		srv.events.notify(ctx, service.CatalogEventTemplateSubmitted, created, actor.UserID, created.CreatedOn)
	}

	return created, nil
}

// ApproveTemplate publishes a pending template. Access tier and content are kept as submitted.
func (srv *templateService) ApproveTemplate(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (*entity.Service, error) {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return nil, err
	}

	var approved *entity.Service
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.ServiceRepo()

		svc, err := loadService(ctx, serviceRepo, serviceID)
		if err != nil {
			return err
		}
		if err := policy.RequirePending(svc); err != nil {
			return err
		}

		svc.Publish(actor.UserID, srv.now())

		if err := serviceRepo.Update(ctx, svc); err != nil {
			return translateServiceWriteErr(err, "approve template")
		}
		approved = svc

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to approve template")
	}

	srv.log(ctx).Info("Template approved", slog.Any("serviceID", serviceID), slog.Any("adminID", actor.UserID))
	srv.events.notify(ctx, service.CatalogEventTemplateApproved, approved, actor.UserID, *approved.ApprovedOn)

	return approved, nil
}

// RejectTemplate deletes a pending template. Rejected templates are never stored.
func (srv *templateService) RejectTemplate(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) error {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return err
	}

	var rejected *entity.Service
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.ServiceRepo()

		svc, err := loadService(ctx, serviceRepo, serviceID)
		if err != nil {
			return err
		}
		if err := policy.RequirePending(svc); err != nil {
			return err
		}

		if err := serviceRepo.Delete(ctx, svc.ID); err != nil {
			return translateServiceWriteErr(err, "delete rejected template")
		}
		svc.State = entity.ServiceStateRejected
		rejected = svc

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to reject template")
	}

	srv.log(ctx).Info("Template rejected", slog.Any("serviceID", serviceID), slog.Any("adminID", actor.UserID))
	srv.events.notify(ctx, service.CatalogEventTemplateRejected, rejected, actor.UserID, srv.now())

	return nil
}

// ListPendingTemplates returns the moderation queue, newest first.
func (srv *templateService) ListPendingTemplates(ctx context.Context, actor usecase.Actor) ([]*entity.Service, error) {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return nil, err
	}

	var pending []*entity.Service
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		items, _, err := repoFactory.ServiceRepo().List(ctx, repository.ServiceFilter{
			States: []entity.ServiceState{entity.ServiceStatePending},
			Sort:   repository.ServiceSortNewest,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list pending templates")
		}
		pending = items

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending templates")
	}

	return pending, nil
}
