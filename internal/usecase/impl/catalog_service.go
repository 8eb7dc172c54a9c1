package impl

import (
	"context"
	"log/slog"

	"toolbox/config"
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

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager       repository.TransactionManager
	serviceRepo     repository.ServiceRepository
	events          *eventNotifier
	defaultPageSize int
	maxPageSize     int
	now             clock
	logger          *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ServiceRepo repository.ServiceRepository
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	defaultPageSize, maxPageSize := 20, 100
	if params.Config != nil && params.Config.Catalog != nil {
		defaultPageSize = params.Config.Catalog.DefaultPageSize
		maxPageSize = params.Config.Catalog.MaxPageSize
	}

	return &catalogService{
		txManager:       params.TxManager,
		serviceRepo:     params.ServiceRepo,
		events:          newEventNotifier(params.Publisher, params.Logger),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		now:             systemClock,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListServices returns one page of published services annotated for the caller.
func (srv *catalogService) ListServices(ctx context.Context, actor usecase.Actor, query usecase.ListServicesQuery) (*usecase.ServicePage, error) {
	filter, err := srv.buildFilter(query)
	if err != nil {
		return nil, err
	}

	page := &usecase.ServicePage{Limit: filter.Limit, Offset: filter.Offset}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		items, total, err := repoFactory.ServiceRepo().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list services")
		}

		views, err := annotate(ctx, repoFactory, actor, items)
		if err != nil {
			return err
		}

		page.Items = views
		page.Total = total

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list services")
	}

	return page, nil
}

func (srv *catalogService) buildFilter(query usecase.ListServicesQuery) (repository.ServiceFilter, error) {
	filter := repository.ServiceFilter{
		States:     []entity.ServiceState{entity.ServiceStatePublished},
		CategoryID: query.CategoryID,
		AccessTier: query.AccessTier,
		Search:     query.Search,
		Limit:      query.Limit,
		Offset:     max(query.Offset, 0),
	}

	if query.AccessTier != nil && !query.AccessTier.IsValid() {
		return filter, domainerrors.ErrInvalidAccessTier
	}

	switch sort := repository.ServiceSort(query.Sort); sort {
	case "":
		filter.Sort = repository.ServiceSortTitle
	case repository.ServiceSortTitle, repository.ServiceSortNewest, repository.ServiceSortPopular:
		filter.Sort = sort
	default:
		return filter, domainerrors.ErrValidationFailed.WithDetails("sort must be title, newest or popular")
	}

	if filter.Limit <= 0 {
		filter.Limit = srv.defaultPageSize
	}
	if filter.Limit > srv.maxPageSize {
		filter.Limit = srv.maxPageSize
	}

	return filter, nil
}

// GetServiceDetail returns a single service annotated for the caller.
// Pending templates are only visible to admins and their creator.
func (srv *catalogService) GetServiceDetail(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (*usecase.ServiceView, error) {
	var view *usecase.ServiceView
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		svc, err := loadService(ctx, repoFactory.ServiceRepo(), serviceID)
		if err != nil {
			return err
		}
		if svc.IsTemplate() && !actor.IsAdmin() && svc.CreatedByUserID != actor.UserID {
			return domainerrors.ErrServiceNotFound
		}

		views, err := annotate(ctx, repoFactory, actor, []*entity.Service{svc})
		if err != nil {
			return err
		}
		view = views[0]

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get service detail")
	}

	if err := srv.serviceRepo.IncrementViews(ctx, serviceID); err != nil {
		srv.log(ctx).Warn("Failed to increment service views", slog.Any("serviceID", serviceID), slog.Any("error", err))
	} else {
		view.Service.ViewsCount++
	}

	return view, nil
}

// annotate decorates services with the caller's favorite state, entitlement and review aggregates.
func annotate(ctx context.Context, repoFactory repository.RepositoryFactory, actor usecase.Actor, items []*entity.Service) ([]*usecase.ServiceView, error) {
	views := make([]*usecase.ServiceView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, svc := range items {
		ids = append(ids, svc.ID)
	}

	favorites, err := repoFactory.FavoriteRepo().FavoritedAmong(ctx, actor.UserID, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load favorites")
	}

	summaries, err := repoFactory.ReviewRepo().Summaries(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load review summaries")
	}

	for _, svc := range items {
		summary := summaries[svc.ID]
		views = append(views, &usecase.ServiceView{
			Service:       svc,
			IsFavorite:    favorites[svc.ID],
			CanUse:        policy.CanUse(actor.Roles, svc),
			ReviewCount:   summary.Count,
			AverageRating: summary.AverageRating,
		})
	}

	return views, nil
}

// CreateService adds a published, pre-approved entry to the catalog.
func (srv *catalogService) CreateService(ctx context.Context, actor usecase.Actor, input usecase.ServiceInput) (*entity.Service, error) {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return nil, err
	}
	if err := validateServiceInput(&input); err != nil {
		return nil, err
	}

	now := srv.now()
	svc := &entity.Service{
		ID:              uuid.New(),
		Title:           input.Title,
		Description:     input.Description,
		CategoryID:      input.CategoryID,
		AccessTier:      input.AccessTier,
		CreatedByUserID: actor.UserID,
		CreatedOn:       now,
	}
	svc.Publish(actor.UserID, now)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireCategory(ctx, repoFactory.CategoryRepo(), input.CategoryID); err != nil {
			return err
		}

		if err := repoFactory.ServiceRepo().Create(ctx, svc); err != nil {
			return translateServiceWriteErr(err, "create service")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create service")
	}

	srv.log(ctx).Info("Service created", slog.Any("serviceID", svc.ID), slog.Any("adminID", actor.UserID))

	return svc, nil
}

// GetServiceForEdit loads a service for the admin edit form.
func (srv *catalogService) GetServiceForEdit(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (*entity.Service, error) {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return nil, err
	}

	svc, err := loadService(ctx, srv.serviceRepo, serviceID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireStandardEdit(svc); err != nil {
		return nil, err
	}

	return svc, nil
}

// UpdateService edits a published entry. Templates only change through approval or rejection.
func (srv *catalogService) UpdateService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID, input usecase.ServiceInput) (*entity.Service, error) {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return nil, err
	}
	if err := validateServiceInput(&input); err != nil {
		return nil, err
	}

	var updated *entity.Service
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.ServiceRepo()

		svc, err := loadService(ctx, serviceRepo, serviceID)
		if err != nil {
			return err
		}
		if err := policy.RequireStandardEdit(svc); err != nil {
			return err
		}
		if svc.CategoryID != input.CategoryID {
			if err := requireCategory(ctx, repoFactory.CategoryRepo(), input.CategoryID); err != nil {
				return err
			}
		}

		svc.Title = input.Title
		svc.Description = input.Description
		svc.CategoryID = input.CategoryID
		svc.AccessTier = input.AccessTier
		svc.ModifiedOn = srv.now()

		if err := serviceRepo.Update(ctx, svc); err != nil {
			return translateServiceWriteErr(err, "update service")
		}
		updated = svc

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update service")
	}

	srv.log(ctx).Info("Service updated", slog.Any("serviceID", serviceID), slog.Any("adminID", actor.UserID))

	return updated, nil
}

// DeleteService removes an entry together with its favorites and reviews.
func (srv *catalogService) DeleteService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) error {
	if err := policy.RequireCatalogEditor(actor.Roles); err != nil {
		return err
	}

	var deleted *entity.Service
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.ServiceRepo()

		svc, err := loadService(ctx, serviceRepo, serviceID)
		if err != nil {
			return err
		}

		if err := serviceRepo.Delete(ctx, svc.ID); err != nil {
			return translateServiceWriteErr(err, "delete service")
		}
		deleted = svc

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete service")
	}

	srv.log(ctx).Info("Service deleted", slog.Any("serviceID", serviceID), slog.Any("adminID", actor.UserID))
	srv.events.notify(ctx, service.CatalogEventServiceDeleted, deleted, actor.UserID, srv.now())

	return nil
}
